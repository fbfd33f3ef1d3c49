package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-relay/internal/mux"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagMux     string
	flagSession string
)

var rootCmd = &cobra.Command{
	Use:   "pane-relay",
	Short: "Mirror a tmux session to a mobile browser and inject input back",
	Long: `pane-relay exposes one tmux session as a mobile-friendly web page.

It polls the target pane, pushes content changes to the browser over
server-sent events, and injects dictated or typed text and control keys
back into the session via tmux send-keys. It also aggregates Claude Code
slash commands and installed skills into one catalog for the command picker.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", envOrDefault("PANE_RELAY_MUX", ""), "terminal multiplexer: tmux, zellij (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", envOrDefault("PANE_RELAY_SESSION", "claude"), "target tmux session or pane (session or session:window.pane)")
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if flagMux != "" {
		return mux.FromName(flagMux)
	}
	return mux.Detect()
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
