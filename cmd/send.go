package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-relay/internal/config"
	"github.com/timvw/pane-relay/internal/injector"
)

var sendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Send literal text to the target pane, followed by Enter",
	Long: `Send text to the target pane as a literal payload (no key-name
interpretation), then press Enter. Multiple arguments are joined with
spaces. This is the same operation POST /send performs on the web bridge.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		inj := &injector.Injector{
			Mux:     m,
			Target:  flagSession,
			Timeout: cfg.SendTimeoutDuration,
		}
		return inj.SendText(cmd.Context(), strings.Join(args, " "))
	},
}

var keyCmd = &cobra.Command{
	Use:   "key <key>",
	Short: "Send a symbolic key to the target pane",
	Long: `Send a single symbolic key name (e.g., "Escape", "C-c", "Down") to
the target pane. The name is passed through to the multiplexer unvalidated.
This is the same operation POST /key performs on the web bridge.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		inj := &injector.Injector{
			Mux:     m,
			Target:  flagSession,
			Timeout: cfg.SendTimeoutDuration,
		}
		return inj.SendKey(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(keyCmd)
}
