package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timvw/pane-relay/internal/catalog"
	"github.com/timvw/pane-relay/internal/config"
	"github.com/timvw/pane-relay/internal/injector"
	"github.com/timvw/pane-relay/internal/mux"
	telem "github.com/timvw/pane-relay/internal/otel"
	"github.com/timvw/pane-relay/internal/server"
)

var (
	flagServeAddr string
	flagServePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web bridge for the target session",
	Long: `Start the HTTP server that mirrors the target tmux session to the
browser and injects input back into it.

Endpoints:
  GET  /          mobile client page
  GET  /stream    server-sent events, full pane content on every change
  GET  /commands  slash-command catalog (built-ins + installed skills)
  POST /send      {"text": ...} — literal text followed by Enter
  POST /key       {"key": ...}  — single symbolic key press
  GET  /healthz   tmux reachability for the configured session

Configuration is loaded from .pane-relay.yaml or environment variables.
The tmux session must already exist; pane-relay never creates or manages it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "listen address (default: all interfaces)")
	serveCmd.Flags().IntVar(&flagServePort, "port", 0, "listen port (default: 8888)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration: defaults -> config file -> env vars -> flags.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.ConfigFile != "" {
		logger.Info("config loaded", zap.String("path", cfg.ConfigFile))
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = flagServeAddr
	}
	if flagServePort > 0 {
		cfg.Port = flagServePort
	}
	if cmd.Root().PersistentFlags().Changed("session") {
		cfg.Session = flagSession
	}
	if flagMux != "" {
		cfg.Mux = flagMux
	}

	// Wire build version into OTEL service metadata.
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured).
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		logger.Warn("otel init failed", zap.Error(err))
	}
	if tel != nil {
		defer tel.Shutdown(context.Background())
	}
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}

	m, err := serveMultiplexer(cfg)
	if err != nil {
		// Per-call recoverable: captures and sends fail individually until
		// a tmux server appears, and the stream keeps retrying each tick.
		logger.Warn("multiplexer not detected at startup", zap.Error(err))
		m = mux.NewTmux()
	}

	srv := &server.Server{
		Mux:          m,
		Target:       cfg.Session,
		Scrollback:   cfg.Scrollback,
		PollInterval: cfg.PollInterval,
		Catalog: &catalog.Builder{
			SkillsDir:      cfg.SkillsDir,
			PluginCacheDir: cfg.PluginCacheDir,
		},
		Injector: &injector.Injector{
			Mux:     m,
			Target:  cfg.Session,
			Timeout: cfg.SendTimeoutDuration,
			Metrics: metrics,
		},
		Logger:  logger,
		Metrics: metrics,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("serving",
		zap.String("addr", addr),
		zap.String("session", cfg.Session),
		zap.Duration("poll", cfg.PollInterval),
		zap.Int("scrollback", cfg.Scrollback))
	if ip := tailscaleIP(ctx); ip != "" {
		logger.Info("reachable via tailscale", zap.String("url", fmt.Sprintf("http://%s:%d", ip, cfg.Port)))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveMultiplexer resolves the multiplexer from config, falling back to
// auto-detection.
func serveMultiplexer(cfg *config.Config) (mux.Multiplexer, error) {
	if cfg.Mux != "" {
		return mux.FromName(cfg.Mux)
	}
	return mux.Detect()
}

// tailscaleIP returns the machine's IPv4 tailscale address, or "" when
// tailscale is absent or not up. Best-effort only; the server binds to the
// configured address either way.
func tailscaleIP(ctx context.Context) string {
	path, err := exec.LookPath("tailscale")
	if err != nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "ip", "-4").Output()
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[0])
}
