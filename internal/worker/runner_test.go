package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestLaunchRunsDetached(t *testing.T) {
	r := NewRunner(testLogger())
	r.Start(context.Background())

	done := make(chan struct{})
	r.Launch("unit", func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unit did not run")
	}
	r.Stop()
}

func TestLaunchRecoversPanic(t *testing.T) {
	r := NewRunner(testLogger())
	r.Start(context.Background())

	r.Launch("panicking", func(ctx context.Context) {
		panic("boom")
	})

	// A panic in one unit must not prevent further launches.
	done := make(chan struct{})
	r.Launch("follow-up", func(ctx context.Context) {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("follow-up unit did not run")
	}
	r.Stop()
}

func TestStopWaitsForInflightUnits(t *testing.T) {
	r := NewRunner(testLogger())
	r.Start(context.Background())

	var finished atomic.Bool
	r.Launch("slow", func(ctx context.Context) {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	r.Stop()
	if !finished.Load() {
		t.Fatal("Stop returned before unit finished")
	}
}

func TestStopCancelsUnitContext(t *testing.T) {
	r := NewRunner(testLogger())
	r.Start(context.Background())

	var cancelled atomic.Bool
	started := make(chan struct{})
	r.Launch("waiting", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	})

	<-started
	r.Stop()
	if !cancelled.Load() {
		t.Fatal("expected unit context to be cancelled on Stop")
	}
}

func TestLaunchBeforeStartUsesBackgroundContext(t *testing.T) {
	r := NewRunner(testLogger())

	done := make(chan error, 1)
	r.Launch("early", func(ctx context.Context) {
		done <- ctx.Err()
	})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected live context, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("unit did not run")
	}
}
