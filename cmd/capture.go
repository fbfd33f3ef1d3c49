package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagCaptureScrollback int

var captureCmd = &cobra.Command{
	Use:   "capture [target]",
	Short: "Capture the current content of a pane",
	Long: `Capture the visible content of a terminal multiplexer pane plus a
scrollback window and print it to stdout.

The target defaults to the configured session. The target format depends
on the multiplexer:
  tmux:   session or session:window.pane  (e.g., "claude", "claude:0.0")
  zellij: (not yet supported)

This is pure transport — no interpretation of the content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := flagSession
		if len(args) == 1 {
			target = args[0]
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		content, err := m.CapturePane(cmd.Context(), target, flagCaptureScrollback)
		if err != nil {
			return fmt.Errorf("failed to capture pane %q: %w", target, err)
		}

		fmt.Fprint(os.Stdout, content)
		return nil
	},
}

func init() {
	captureCmd.Flags().IntVar(&flagCaptureScrollback, "scrollback", 200, "history lines to include (0: visible region only)")
	rootCmd.AddCommand(captureCmd)
}
