package mirror

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/timvw/pane-relay/internal/model"
)

// scriptedMux replays a fixed sequence of capture results. Once the script
// is exhausted the final entry repeats forever.
type scriptedMux struct {
	mu     sync.Mutex
	script []captureResult
	calls  int
}

type captureResult struct {
	content string
	err     error
}

func (s *scriptedMux) Name() string { return "scripted" }

func (s *scriptedMux) ListPanes(ctx context.Context, filter string) ([]model.Pane, error) {
	return nil, nil
}

func (s *scriptedMux) CapturePane(ctx context.Context, target string, scrollback int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	r := s.script[idx]
	return r.content, r.err
}

func (s *scriptedMux) SendLiteral(ctx context.Context, target, text string) error { return nil }
func (s *scriptedMux) SendKey(ctx context.Context, target, key string) error      { return nil }

func (s *scriptedMux) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// receive reads one snapshot or fails the test after a timeout.
func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return ""
}

// expectNone asserts no snapshot arrives within the window.
func expectNone(t *testing.T, ch <-chan string, window time.Duration) {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if ok {
			t.Fatalf("unexpected snapshot %q", snap)
		}
	case <-time.After(window):
	}
}

func TestPollerEmitsFirstCapture(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &scriptedMux{script: []captureResult{{content: "A\nB"}}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	if got := receive(t, ch); got != "A\nB" {
		t.Errorf("first snapshot = %q, want %q", got, "A\nB")
	}
}

func TestPollerQuiescentWhenUnchanged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &scriptedMux{script: []captureResult{{content: "A\nB"}}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	receive(t, ch)

	// Let several identical capture cycles pass: no further events.
	expectNone(t, ch, 50*time.Millisecond)
	if m.callCount() < 2 {
		t.Errorf("expected multiple capture cycles, got %d", m.callCount())
	}
}

func TestPollerEmitsFullContentOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &scriptedMux{script: []captureResult{
		{content: "A\nB"},
		{content: "A\nB"},
		{content: "A\nB\nC"},
	}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	if got := receive(t, ch); got != "A\nB" {
		t.Fatalf("first snapshot = %q, want %q", got, "A\nB")
	}
	if got := receive(t, ch); got != "A\nB\nC" {
		t.Errorf("second snapshot = %q, want full new content %q", got, "A\nB\nC")
	}
	// Content is now stable again: quiescent.
	expectNone(t, ch, 50*time.Millisecond)
}

func TestPollerSkipsFailedCycleAndKeepsBaseline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &scriptedMux{script: []captureResult{
		{content: "A"},
		{err: errors.New("capture-pane: no server running")},
		{content: "A"},
	}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	if got := receive(t, ch); got != "A" {
		t.Fatalf("first snapshot = %q, want %q", got, "A")
	}
	// The failed cycle must not emit, and the recovered identical capture
	// must still compare equal to the retained baseline.
	expectNone(t, ch, 50*time.Millisecond)
}

func TestPollerRecoversWithChangeAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := &scriptedMux{script: []captureResult{
		{content: "A"},
		{err: errors.New("boom")},
		{content: "B"},
	}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	if got := receive(t, ch); got != "A" {
		t.Fatalf("first snapshot = %q, want %q", got, "A")
	}
	if got := receive(t, ch); got != "B" {
		t.Errorf("post-failure snapshot = %q, want %q", got, "B")
	}
}

func TestPollerClosesChannelOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := &scriptedMux{script: []captureResult{{content: "A"}}}
	p := &Poller{Mux: m, Target: "claude", Interval: time.Millisecond}

	ch := p.Snapshots(ctx)
	receive(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A buffered snapshot may still be in flight; the next
			// receive must observe closure.
			if _, ok := <-ch; ok {
				t.Error("channel still open after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Error("channel not closed after cancel")
	}
}

func TestPollersAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m1 := &scriptedMux{script: []captureResult{{content: "one"}}}
	m2 := &scriptedMux{script: []captureResult{{content: "two"}}}

	ch1 := (&Poller{Mux: m1, Target: "a", Interval: time.Millisecond}).Snapshots(ctx)
	ch2 := (&Poller{Mux: m2, Target: "b", Interval: time.Millisecond}).Snapshots(ctx)

	if got := receive(t, ch1); got != "one" {
		t.Errorf("subscriber 1 snapshot = %q, want %q", got, "one")
	}
	if got := receive(t, ch2); got != "two" {
		t.Errorf("subscriber 2 snapshot = %q, want %q", got, "two")
	}
}
