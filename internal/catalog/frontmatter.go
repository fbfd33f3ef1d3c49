package catalog

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// skillMeta is the YAML frontmatter structure of a SKILL.md file.
type skillMeta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parseFrontmatter extracts name and description from a SKILL.md
// frontmatter block:
//
//	---
//	name: deploy
//	description: Deploy the app
//	---
//
// Returns ok=false for any file that does not open with a delimited
// frontmatter block, has no closing delimiter, fails to decode as YAML,
// or decodes without a name. Malformed descriptors are skipped, never
// surfaced as errors.
func parseFrontmatter(data []byte) (name, description string, ok bool) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return "", "", false
	}
	rest := content[len("---\n"):]

	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", "", false
	}
	block := rest[:end]

	var meta skillMeta
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return "", "", false
	}

	meta.Name = strings.TrimSpace(meta.Name)
	if meta.Name == "" {
		return "", "", false
	}
	return meta.Name, strings.TrimSpace(meta.Description), true
}
