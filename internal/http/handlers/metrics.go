package handlers

import (
	"net/http"
	"time"
)

// Stats reports live process counters for dashboards and smoke checks.
func (a *App) Stats(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"active_sessions": a.Sessions.Len(),
		"uptime_seconds":  int64(time.Since(a.startedAt).Seconds()),
	})
}
