package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"imagestudio/internal/domain"
)

// Registry maps session ids to controllers. Sessions are created on first
// use and swept after sitting idle past the TTL. Nothing is persisted.
type Registry struct {
	mu       sync.Mutex
	gen      Generator
	idleTTL  time.Duration
	logger   zerolog.Logger
	sessions map[string]*entry
}

type entry struct {
	ctrl     *Controller
	lastSeen time.Time
}

func NewRegistry(gen Generator, idleTTL time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		gen:      gen,
		idleTTL:  idleTTL,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// GetOrCreate returns the controller for id, creating it on first use, and
// marks the session active.
func (r *Registry) GetOrCreate(id string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		e = &entry{ctrl: NewController(r.gen)}
		r.sessions[id] = e
		r.logger.Debug().Str("session_id", id).Msg("session created")
	}
	e.lastSeen = time.Now()
	return e.ctrl
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle past the TTL. A session with a submission in
// flight is left alone so the outcome still has somewhere to land.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) < r.idleTTL {
			continue
		}
		if e.ctrl.Status() == domain.StatusLoading {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	if removed > 0 {
		r.logger.Debug().Int("removed", removed).Int("remaining", len(r.sessions)).Msg("swept idle sessions")
	}
	return removed
}

// Run sweeps on the given interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
