// Package catalog builds the unified slash-command catalog: a static
// built-in table merged with skill commands discovered on disk.
//
// Two descriptor trees are scanned on every build (no caching):
//
//	<skillsDir>/<skill>/SKILL.md              user skills
//	<pluginCacheDir>/<market>/<plugin>/...    plugin skills, any depth
//
// Every I/O or parse failure affects only the one descriptor involved; a
// build never fails.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/timvw/pane-relay/internal/model"
)

// skillFile is the descriptor filename expected in every skill directory.
const skillFile = "SKILL.md"

// Builder discovers skill commands from the configured descriptor trees.
// The zero value scans nothing and yields only the built-in table.
type Builder struct {
	// SkillsDir holds user skills, one subdirectory per skill.
	SkillsDir string
	// PluginCacheDir holds installed plugins as marketplace/plugin/version trees.
	PluginCacheDir string
}

// pluginKey identifies a plugin-provided skill. User skills and built-ins
// dedup by bare name instead; the two tiers never collide with each other.
type pluginKey struct {
	plugin string
	skill  string
}

// Build returns the full ordered catalog: built-ins first in their fixed
// order, then discovered skill commands sorted by command string.
// Build never fails; unreadable sources contribute nothing.
func (b *Builder) Build() []model.Command {
	discovered := b.discover()
	sort.Slice(discovered, func(i, j int) bool {
		return discovered[i].Command < discovered[j].Command
	})
	return append(Builtins(), discovered...)
}

// discover scans both descriptor trees and returns deduplicated commands
// in scan order.
func (b *Builder) discover() []model.Command {
	var commands []model.Command
	seenSkills := make(map[string]struct{})
	seenPlugins := make(map[pluginKey]struct{})

	// User skills: <skillsDir>/<skill>/SKILL.md, one level deep.
	for _, path := range globDescriptors(b.SkillsDir, filepath.Join("*", skillFile)) {
		name, desc, ok := readDescriptor(path)
		if !ok {
			continue
		}
		if _, dup := seenSkills[name]; dup {
			continue
		}
		seenSkills[name] = struct{}{}
		commands = append(commands, model.Command{
			Command:     "/" + name,
			Description: desc,
			TakesArgs:   true,
		})
	}

	// Plugin skills: any SKILL.md under the plugin cache. The plugin
	// identity is the second path segment below the cache root
	// (marketplace/plugin/version/...).
	for _, path := range globDescriptors(b.PluginCacheDir, filepath.Join("**", skillFile)) {
		plugin, ok := pluginIdentity(b.PluginCacheDir, path)
		if !ok {
			continue
		}
		name, desc, parsed := readDescriptor(path)
		if !parsed {
			continue
		}
		key := pluginKey{plugin: plugin, skill: name}
		if _, dup := seenPlugins[key]; dup {
			continue
		}
		seenPlugins[key] = struct{}{}

		cmd := "/" + plugin + ":" + name
		if plugin == name {
			cmd = "/" + name
		}
		commands = append(commands, model.Command{
			Command:     cmd,
			Description: desc,
			TakesArgs:   true,
		})
	}

	return commands
}

// globDescriptors matches pattern under dir, returning nil on any error
// or when dir is unset.
func globDescriptors(dir, pattern string) []string {
	if dir == "" {
		return nil
	}
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
	if err != nil {
		return nil
	}
	return matches
}

// readDescriptor reads and parses one SKILL.md file.
func readDescriptor(path string) (name, description string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", false
	}
	return parseFrontmatter(data)
}

// pluginIdentity derives the plugin name from a descriptor path inside the
// plugin cache. For <cacheDir>/market/plugin/version/SKILL.md the identity
// is "plugin". Descriptors too shallow for that segment to exist (e.g. a
// SKILL.md directly under the cache or a marketplace directory) have a
// malformed layout and are discarded.
func pluginIdentity(cacheDir, path string) (string, bool) {
	rel, err := filepath.Rel(cacheDir, path)
	if err != nil {
		return "", false
	}
	segs := strings.Split(filepath.ToSlash(rel), "/")
	// Need at least marketplace/plugin/SKILL.md.
	if len(segs) < 3 {
		return "", false
	}
	return segs[1], true
}
