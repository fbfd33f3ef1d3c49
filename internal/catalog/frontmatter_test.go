package catalog

import "testing"

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantDesc string
		wantOK   bool
	}{
		{
			name:     "name and description",
			input:    "---\nname: deploy\ndescription: Deploy app\n---\n\n# Deploy\n",
			wantName: "deploy",
			wantDesc: "Deploy app",
			wantOK:   true,
		},
		{
			name:     "name only",
			input:    "---\nname: lint\n---\nbody\n",
			wantName: "lint",
			wantDesc: "",
			wantOK:   true,
		},
		{
			name:     "quoted values",
			input:    "---\nname: \"release\"\ndescription: \"Cut a release\"\n---\n",
			wantName: "release",
			wantDesc: "Cut a release",
			wantOK:   true,
		},
		{
			name:     "crlf line endings",
			input:    "---\r\nname: deploy\r\n---\r\n",
			wantName: "deploy",
			wantOK:   true,
		},
		{
			name:   "missing name",
			input:  "---\ndescription: no name here\n---\n",
			wantOK: false,
		},
		{
			name:   "no frontmatter",
			input:  "# Just markdown\n",
			wantOK: false,
		},
		{
			name:   "unterminated frontmatter",
			input:  "---\nname: deploy\n",
			wantOK: false,
		},
		{
			name:   "not yaml",
			input:  "---\n: : :\n---\n",
			wantOK: false,
		},
		{
			name:   "empty file",
			input:  "",
			wantOK: false,
		},
		{
			name:   "whitespace name discarded",
			input:  "---\nname: \"  \"\n---\n",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, desc, ok := parseFrontmatter([]byte(tt.input))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if desc != tt.wantDesc {
				t.Errorf("description = %q, want %q", desc, tt.wantDesc)
			}
		})
	}
}
