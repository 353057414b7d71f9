package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"imagestudio/internal/domain"
	"imagestudio/internal/middleware"
	"imagestudio/internal/session"
	"imagestudio/pkg/datauri"
)

const sessionCookie = "imagestudio_session"

type uploadImageRequest struct {
	Filename string `json:"filename"`
	DataURL  string `json:"data_url"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type setPromptRequest struct {
	Prompt string `json:"prompt"`
}

// controller resolves the caller's session, minting a cookie on first contact.
func (a *App) controller(w http.ResponseWriter, r *http.Request) *session.Controller {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return a.Sessions.GetOrCreate(id)
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)
	a.json(w, http.StatusOK, ctrl.Snapshot())
}

// UploadImage accepts the picked file as a data URI, the representation the
// UI's file reader produces. The payload is split back into raw bytes + MIME
// type before being held in the session.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)

	// UploadMaxBytes caps the raw image; the body carries it base64-encoded,
	// so allow for the 4/3 inflation plus JSON framing.
	bodyLimit := a.UploadMaxBytes + a.UploadMaxBytes/3 + 512
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	var req uploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.uploadFailed(w, ctrl, err)
		return
	}
	mimeType, data, err := datauri.Decode(req.DataURL)
	if err != nil {
		a.uploadFailed(w, ctrl, err)
		return
	}

	if err := ctrl.UploadImage(domain.SourceImage{
		Data:     data,
		MIMEType: mimeType,
		Filename: req.Filename,
	}); err != nil {
		a.uploadFailed(w, ctrl, err)
		return
	}
	a.json(w, http.StatusOK, ctrl.Snapshot())
}

// uploadFailed records an unreadable file: the session enters the error
// state, no remote call is made, and the user sees only a generic message.
func (a *App) uploadFailed(w http.ResponseWriter, ctrl *session.Controller, cause error) {
	a.Logger.Warn().Err(cause).Msg("rejected unreadable image upload")
	ctrl.UploadFailed()
	a.error(w, http.StatusBadRequest, "unreadable_file", domain.ErrUnreadableFile.Message)
}

func (a *App) SetMode(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		a.inputError(w, err)
		return
	}
	ctrl.SetMode(mode)
	a.json(w, http.StatusOK, ctrl.Snapshot())
}

func (a *App) SetPrompt(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)
	var req setPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := ctrl.SetPrompt(req.Prompt); err != nil {
		a.inputError(w, err)
		return
	}
	a.json(w, http.StatusOK, ctrl.Snapshot())
}

func (a *App) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)
	snap, err := ctrl.Submit(r.Context())
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			a.Logger.Warn().
				Str("request_id", middleware.RequestIDFromContext(r.Context())).
				Msg("submission failed")
			a.error(w, http.StatusBadGateway, "generation_failed", genErr.Message)
			return
		}
		a.inputError(w, err)
		return
	}
	a.json(w, http.StatusOK, snap)
}

func (a *App) Reset(w http.ResponseWriter, r *http.Request) {
	ctrl := a.controller(w, r)
	ctrl.Reset()
	a.json(w, http.StatusOK, ctrl.Snapshot())
}

func (a *App) inputError(w http.ResponseWriter, err error) {
	var inputErr *domain.InputError
	if !errors.As(err, &inputErr) {
		a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
		return
	}
	if errors.Is(err, domain.ErrBusy) {
		a.error(w, http.StatusConflict, "busy", inputErr.Message)
		return
	}
	a.error(w, http.StatusBadRequest, "bad_request", inputErr.Message)
}
