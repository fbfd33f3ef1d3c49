// Package mux provides an abstraction over terminal multiplexers (tmux, zellij).
//
// This package is pure transport: it captures pane content and injects key
// sequences without interpreting either. The multiplexer owns the session
// lifecycle; callers assume a pre-existing named session.
package mux

import (
	"context"

	"github.com/timvw/pane-relay/internal/model"
)

// Multiplexer abstracts terminal multiplexer operations.
// Implementations exist for tmux and (future) zellij.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux", "zellij").
	Name() string

	// ListPanes returns all panes, optionally filtered by a session name regex pattern.
	// An empty filter returns all panes.
	ListPanes(ctx context.Context, filter string) ([]model.Pane, error)

	// CapturePane captures the visible content of a pane plus up to
	// scrollback lines of history. A scrollback of 0 captures only the
	// visible region. The target format depends on the multiplexer
	// (e.g., "session:window.pane" or a bare session name for tmux).
	CapturePane(ctx context.Context, target string, scrollback int) (string, error)

	// SendLiteral sends text to a pane as a literal (non-interpreted)
	// payload. No terminating key press is added; callers compose one
	// when they need it.
	SendLiteral(ctx context.Context, target, text string) error

	// SendKey sends a single symbolic key name (e.g., "Escape", "C-c",
	// "Down") to a pane. The name is passed through unvalidated; the
	// multiplexer decides what it means.
	SendKey(ctx context.Context, target, key string) error
}
