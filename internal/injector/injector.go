// Package injector translates client input requests into key-sequence
// operations on the target pane. Literal text is always terminated with a
// separate Enter key press; symbolic key names pass through unvalidated and
// the multiplexer decides what they mean.
package injector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timvw/pane-relay/internal/mux"
	relayotel "github.com/timvw/pane-relay/internal/otel"
)

// DefaultTimeout bounds each individual send operation.
const DefaultTimeout = 5 * time.Second

// ErrTimeout reports that a send operation did not complete within its
// per-call deadline. The session state is not rolled back: with SendText
// the literal payload may already be in the pane when Enter times out.
var ErrTimeout = errors.New("injection timed out")

// Injector sends text and key events to one target pane. No retries are
// attempted; callers get a single success/failure signal per call and the
// session boundary's state stays authoritative.
type Injector struct {
	// Mux is the session boundary to inject into.
	Mux mux.Multiplexer
	// Target is the pane receiving input.
	Target string
	// Timeout bounds each send sub-operation. Zero means DefaultTimeout.
	Timeout time.Duration
	// Metrics records injection outcomes; nil-safe.
	Metrics *relayotel.Metrics
}

// SendText forwards text as a single literal payload, then a separate
// Enter key press. Each sub-operation runs under its own timeout.
func (i *Injector) SendText(ctx context.Context, text string) error {
	err := i.bounded(ctx, func(ctx context.Context) error {
		return i.Mux.SendLiteral(ctx, i.Target, text)
	})
	if err != nil {
		i.Metrics.RecordInjection(ctx, "text", "error")
		return fmt.Errorf("send text: %w", err)
	}

	err = i.bounded(ctx, func(ctx context.Context) error {
		return i.Mux.SendKey(ctx, i.Target, "Enter")
	})
	if err != nil {
		i.Metrics.RecordInjection(ctx, "text", "error")
		return fmt.Errorf("send enter: %w", err)
	}

	i.Metrics.RecordInjection(ctx, "text", "ok")
	return nil
}

// SendKey forwards a symbolic key name (e.g., "Escape", "C-c", "Down") as
// a single key-press event. The name is not validated here; unrecognized
// names surface as whatever error the session boundary produces.
func (i *Injector) SendKey(ctx context.Context, key string) error {
	err := i.bounded(ctx, func(ctx context.Context) error {
		return i.Mux.SendKey(ctx, i.Target, key)
	})
	if err != nil {
		i.Metrics.RecordInjection(ctx, "key", "error")
		return fmt.Errorf("send key %q: %w", key, err)
	}
	i.Metrics.RecordInjection(ctx, "key", "ok")
	return nil
}

// bounded runs op under the per-call timeout, mapping deadline expiry to
// ErrTimeout.
func (i *Injector) bounded(ctx context.Context, op func(context.Context) error) error {
	timeout := i.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := op(ctx)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w after %s: %v", ErrTimeout, timeout, err)
	}
	return err
}
