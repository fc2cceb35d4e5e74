package workflow

import (
	"context"
	"testing"
	"time"
)

// DB-free: the dispatcher's claim/publish cycle needs MySQL and Pub/Sub, so
// these cover construction and the nil-DB guard only.

func TestNewEventDispatcher_Defaults(t *testing.T) {
	d := NewEventDispatcher(nil, nil)
	if d.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", d.BatchSize)
	}
	if d.MaxAttempts != 20 {
		t.Errorf("MaxAttempts = %d, want 20", d.MaxAttempts)
	}
	if d.LockTimeout != 30*time.Second {
		t.Errorf("LockTimeout = %v, want 30s", d.LockTimeout)
	}
	if d.DispatcherID == "" {
		t.Error("DispatcherID should be set")
	}
	if NewEventDispatcher(nil, nil).DispatcherID == d.DispatcherID {
		t.Error("dispatcher ids should be unique per instance")
	}
}

func TestDispatchOnce_NilDBIsNoop(t *testing.T) {
	d := NewEventDispatcher(nil, nil)
	// Must not panic.
	d.dispatchOnce(context.Background())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	d := NewEventDispatcher(nil, nil)
	d.PollInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop after context cancel")
	}
}
