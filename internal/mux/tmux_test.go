package mux

import "testing"

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantSession string
		wantWindow  int
		wantPane    int
		wantErr     bool
	}{
		{name: "simple", target: "claude:0.0", wantSession: "claude", wantWindow: 0, wantPane: 0},
		{name: "multi-digit indexes", target: "work:12.3", wantSession: "work", wantWindow: 12, wantPane: 3},
		{name: "session with colon", target: "a:b:1.2", wantSession: "a:b", wantWindow: 1, wantPane: 2},
		{name: "missing colon", target: "claude", wantErr: true},
		{name: "missing dot", target: "claude:0", wantErr: true},
		{name: "non-numeric window", target: "claude:x.0", wantErr: true},
		{name: "non-numeric pane", target: "claude:0.y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pane, err := parseTarget(tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTarget(%q) expected error, got %+v", tt.target, pane)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTarget(%q): %v", tt.target, err)
			}
			if pane.Session != tt.wantSession {
				t.Errorf("Session = %q, want %q", pane.Session, tt.wantSession)
			}
			if pane.Window != tt.wantWindow {
				t.Errorf("Window = %d, want %d", pane.Window, tt.wantWindow)
			}
			if pane.Pane != tt.wantPane {
				t.Errorf("Pane = %d, want %d", pane.Pane, tt.wantPane)
			}
			if pane.Target != tt.target {
				t.Errorf("Target = %q, want %q", pane.Target, tt.target)
			}
		})
	}
}
