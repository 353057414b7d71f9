package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"imagestudio/internal/session"
)

// App is the handler container: the session registry plus the few knobs the
// handlers need.
type App struct {
	Sessions       *session.Registry
	Logger         zerolog.Logger
	UploadMaxBytes int64

	startedAt time.Time
}

func NewApp(sessions *session.Registry, logger zerolog.Logger, uploadMaxBytes int64) *App {
	return &App{
		Sessions:       sessions,
		Logger:         logger,
		UploadMaxBytes: uploadMaxBytes,
		startedAt:      time.Now(),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
