package handlers

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// UI serves the single-page interface. All state lives in the session; the
// page only mirrors it.
func (a *App) UI(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		a.Logger.Error().Err(err).Msg("failed to render index template")
	}
}
