package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Session != "claude" {
		t.Errorf("Session: got %q, want %q", cfg.Session, "claude")
	}
	if cfg.Scrollback != 200 {
		t.Errorf("Scrollback: got %d, want %d", cfg.Scrollback, 200)
	}
	if cfg.Poll != "400ms" {
		t.Errorf("Poll: got %q, want %q", cfg.Poll, "400ms")
	}
	if cfg.SendTimeout != "5s" {
		t.Errorf("SendTimeout: got %q, want %q", cfg.SendTimeout, "5s")
	}
	if cfg.Port != 8888 {
		t.Errorf("Port: got %d, want %d", cfg.Port, 8888)
	}
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("PANE_RELAY_POLL", "1s")
	t.Setenv("PANE_RELAY_SEND_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval: got %v, want %v", cfg.PollInterval, time.Second)
	}
	if cfg.SendTimeoutDuration != 250*time.Millisecond {
		t.Errorf("SendTimeoutDuration: got %v, want %v", cfg.SendTimeoutDuration, 250*time.Millisecond)
	}
}

func TestLoadRejectsInvalidPoll(t *testing.T) {
	t.Setenv("PANE_RELAY_POLL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid poll interval, got nil")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pane-relay.yaml")
	data := []byte("session: from-file\nport: 9999\nscrollback: 50\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("PANE_RELAY_SESSION", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Session != "from-env" {
		t.Errorf("Session: got %q, want env override %q", cfg.Session, "from-env")
	}
	if cfg.Port != 9999 {
		t.Errorf("Port: got %d, want file value %d", cfg.Port, 9999)
	}
	if cfg.Scrollback != 50 {
		t.Errorf("Scrollback: got %d, want file value %d", cfg.Scrollback, 50)
	}
	if cfg.ConfigFile != ".pane-relay.yaml" {
		t.Errorf("ConfigFile: got %q, want %q", cfg.ConfigFile, ".pane-relay.yaml")
	}
}

func TestFileScrollbackZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pane-relay.yaml")
	if err := os.WriteFile(path, []byte("scrollback: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scrollback != 0 {
		t.Errorf("Scrollback: got %d, want 0 (visible region only)", cfg.Scrollback)
	}
}

func TestFileScrollbackAbsentKeepsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pane-relay.yaml")
	if err := os.WriteFile(path, []byte("session: other\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scrollback != 200 {
		t.Errorf("Scrollback: got %d, want default %d", cfg.Scrollback, 200)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "empty uses fallback", input: "", fallback: time.Second, want: time.Second},
		{name: "valid duration", input: "750ms", fallback: time.Second, want: 750 * time.Millisecond},
		{name: "invalid", input: "garbage", fallback: time.Second, wantErr: true},
		{name: "zero rejected", input: "0s", fallback: time.Second, wantErr: true},
		{name: "negative rejected", input: "-1s", fallback: time.Second, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDuration(tt.input, tt.fallback)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDuration(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDuration(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
