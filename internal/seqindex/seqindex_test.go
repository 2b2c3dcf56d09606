package seqindex

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeIndex answers "" until a configured number of calls have been made.
type fakeIndex struct {
	calls   atomic.Int32
	readyAt int32
	id      string
	err     error
}

func (f *fakeIndex) FindSequenceFile(ctx context.Context, uploadID string) (string, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	if n >= f.readyAt {
		return f.id, nil
	}
	return "", nil
}

func TestWaitForSequenceFile_ImmediateHit(t *testing.T) {
	idx := &fakeIndex{readyAt: 1, id: "seq-1"}
	id, ok := WaitForSequenceFile(context.Background(), idx, "upload-1", Options{
		Interval: time.Millisecond,
		Budget:   time.Second,
	})
	if !ok || id != "seq-1" {
		t.Fatalf("got (%q, %v), want (seq-1, true)", id, ok)
	}
	if idx.calls.Load() != 1 {
		t.Errorf("index queried %d times, want 1", idx.calls.Load())
	}
}

func TestWaitForSequenceFile_HitAfterRetries(t *testing.T) {
	idx := &fakeIndex{readyAt: 3, id: "seq-2"}
	id, ok := WaitForSequenceFile(context.Background(), idx, "upload-2", Options{
		Interval: time.Millisecond,
		Budget:   time.Second,
	})
	if !ok || id != "seq-2" {
		t.Fatalf("got (%q, %v), want (seq-2, true)", id, ok)
	}
	if idx.calls.Load() != 3 {
		t.Errorf("index queried %d times, want 3", idx.calls.Load())
	}
}

func TestWaitForSequenceFile_GivesUp(t *testing.T) {
	idx := &fakeIndex{readyAt: 1000, id: "never"}
	id, ok := WaitForSequenceFile(context.Background(), idx, "upload-3", Options{
		Interval: 5 * time.Millisecond,
		Budget:   20 * time.Millisecond,
	})
	if ok || id != "" {
		t.Fatalf("got (%q, %v), want give-up", id, ok)
	}
}

func TestWaitForSequenceFile_ErrorsKeepRetrying(t *testing.T) {
	// Transient index errors are not terminal; the budget is.
	idx := &fakeIndex{err: errors.New("index unavailable")}
	start := time.Now()
	_, ok := WaitForSequenceFile(context.Background(), idx, "upload-4", Options{
		Interval: 5 * time.Millisecond,
		Budget:   20 * time.Millisecond,
	})
	if ok {
		t.Fatal("expected give-up on a persistently failing index")
	}
	if idx.calls.Load() < 2 {
		t.Errorf("index queried %d times, want retries", idx.calls.Load())
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("gave up after %v, before the budget", elapsed)
	}
}

func TestWaitForSequenceFile_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := &fakeIndex{readyAt: 1000}
	done := make(chan struct{})
	var ok bool
	go func() {
		_, ok = WaitForSequenceFile(ctx, idx, "upload-5", Options{
			Interval: time.Hour,
			Budget:   time.Hour,
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lookup did not return after context cancellation")
	}
	if ok {
		t.Error("cancelled lookup reported success")
	}
}

func TestDefaultOptionsApplied(t *testing.T) {
	// Zero options must not spin-loop; the defaults are substituted. A hit
	// on the first call keeps the test fast.
	idx := &fakeIndex{readyAt: 1, id: "seq-6"}
	id, ok := WaitForSequenceFile(context.Background(), idx, "upload-6", Options{})
	if !ok || id != "seq-6" {
		t.Fatalf("got (%q, %v), want (seq-6, true)", id, ok)
	}
}
