package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-relay/internal/catalog"
	"github.com/timvw/pane-relay/internal/config"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Print the command catalog as JSON",
	Long: `Build and print the full slash-command catalog: the built-in command
table followed by skills discovered under the configured skills directory
and plugin cache. The same catalog backs GET /commands on the web bridge.

Descriptor sources are read fresh on every invocation; unreadable or
malformed descriptors are skipped silently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		builder := &catalog.Builder{
			SkillsDir:      cfg.SkillsDir,
			PluginCacheDir: cfg.PluginCacheDir,
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(builder.Build())
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
