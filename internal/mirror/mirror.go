// Package mirror turns a stateful terminal pane into a push-style event
// stream. A Poller re-captures the pane on a fixed cadence and emits the
// full current content whenever it differs from the previously emitted
// snapshot. There is no incremental diffing: terminal content scrolls,
// reflows, and clears in ways that make line-level patching unreliable, so
// each event carries the whole capture and a single equality check keeps
// the subscriber eventually consistent.
package mirror

import (
	"context"
	"time"

	"github.com/timvw/pane-relay/internal/mux"
	relayotel "github.com/timvw/pane-relay/internal/otel"
)

const (
	// DefaultInterval is the capture cadence when none is configured.
	DefaultInterval = 400 * time.Millisecond
	// DefaultScrollback is the history line count included in each capture.
	DefaultScrollback = 200
	// defaultCaptureTimeout bounds a single capture-pane invocation.
	defaultCaptureTimeout = 5 * time.Second
)

// Poller produces the snapshot stream for one subscriber. Each subscriber
// gets its own Poller with its own baseline; pollers share nothing, so no
// locking is needed between concurrent streams.
type Poller struct {
	// Mux is the session boundary to capture from.
	Mux mux.Multiplexer
	// Target is the pane to mirror (session name or session:window.pane).
	Target string
	// Scrollback is the history line count per capture. Zero means
	// DefaultScrollback; negative means visible region only.
	Scrollback int
	// Interval is the capture cadence. Zero means DefaultInterval.
	Interval time.Duration
	// CaptureTimeout bounds each capture call. Zero means a 5s default.
	CaptureTimeout time.Duration
	// Metrics records poll outcomes; nil-safe.
	Metrics *relayotel.Metrics
}

// Snapshots starts the polling loop and returns its event channel. One
// value is delivered per detected content change, carrying the entire
// current capture. The channel is closed when ctx is cancelled; capture
// failures skip the cycle without closing the stream or disturbing the
// baseline.
func (p *Poller) Snapshots(ctx context.Context) <-chan string {
	ch := make(chan string, 1)
	go p.run(ctx, ch)
	return ch
}

func (p *Poller) run(ctx context.Context, ch chan<- string) {
	defer close(ch)

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev string
	havePrev := false

	for {
		current, err := p.capture(ctx)
		switch {
		case err != nil:
			// Skip the cycle; the baseline stays as-is so the next
			// successful capture is compared against the last content
			// the subscriber actually saw.
			p.Metrics.RecordCaptureCycle(ctx, "error")
		case havePrev && current == prev:
			p.Metrics.RecordCaptureCycle(ctx, "unchanged")
		default:
			select {
			case ch <- current:
			case <-ctx.Done():
				return
			}
			prev = current
			havePrev = true
			p.Metrics.RecordCaptureCycle(ctx, "changed")
			p.Metrics.RecordStreamEvent(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// capture performs one bounded capture-pane call.
func (p *Poller) capture(ctx context.Context) (string, error) {
	timeout := p.CaptureTimeout
	if timeout <= 0 {
		timeout = defaultCaptureTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scrollback := p.Scrollback
	if scrollback == 0 {
		scrollback = DefaultScrollback
	}
	if scrollback < 0 {
		scrollback = 0
	}
	return p.Mux.CapturePane(ctx, p.Target, scrollback)
}
