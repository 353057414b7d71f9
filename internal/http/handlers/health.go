package handlers

import (
	"net/http"
)

const serviceName = "imagestudio"

// Health reports liveness for load balancer and smoke checks.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}
