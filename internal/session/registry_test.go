package session

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagestudio/internal/domain"
)

func newTestRegistry(ttl time.Duration) *Registry {
	return NewRegistry(&fakeGenerator{}, ttl, zerolog.Nop())
}

func TestGetOrCreateReturnsSameControllerPerID(t *testing.T) {
	r := newTestRegistry(time.Minute)
	a := r.GetOrCreate("one")
	b := r.GetOrCreate("one")
	other := r.GetOrCreate("two")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, r.Len())
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	r := newTestRegistry(10 * time.Minute)
	r.GetOrCreate("stale")

	removed := r.Sweep(time.Now().Add(11 * time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, r.Len())
}

func TestSweepKeepsLoadingSessions(t *testing.T) {
	gen := &fakeGenerator{
		editDataURL: "data:image/png;base64,QUJD",
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	r := NewRegistry(gen, 10*time.Minute, zerolog.Nop())

	r.GetOrCreate("stale")

	busy := r.GetOrCreate("busy")
	require.NoError(t, busy.UploadImage(photoPNG()))
	require.NoError(t, busy.SetPrompt("add snow"))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = busy.Submit(context.Background())
	}()
	select {
	case <-gen.started:
	case <-time.After(time.Second):
		t.Fatal("submission never started")
	}

	// Both sessions are past the TTL, but "busy" has a submission in
	// flight and must be kept so the outcome has somewhere to land.
	removed := r.Sweep(time.Now().Add(11 * time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, domain.StatusLoading, busy.Status())

	close(gen.release)
	<-done
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	r := newTestRegistry(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		r.Run(ctx, time.Millisecond)
	}()
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
