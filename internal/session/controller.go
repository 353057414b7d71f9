// Package session holds the transient state machine behind one open UI
// instance: the selected mode, the uploaded image, the prompt, and the most
// recent result or error. Sessions live in memory only and are discarded on
// reset or registry sweep.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"imagestudio/internal/domain"
	"imagestudio/pkg/datauri"
)

// Generator is the generation client contract the controller drives.
type Generator interface {
	Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
	EditImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// Snapshot is a read-only copy of a session for rendering. Result and
// ErrorMessage are never both set.
type Snapshot struct {
	Mode         domain.Mode    `json:"mode"`
	Status       domain.Status  `json:"status"`
	Filename     string         `json:"filename,omitempty"`
	ImageDataURL string         `json:"image_data_url,omitempty"`
	Prompt       string         `json:"prompt"`
	Result       *domain.Result `json:"result,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// Controller owns one Session. All transitions run under its mutex; the
// remote call during Submit runs outside the lock so the session stays
// observable, and mutable, while loading. There is no cancellation: a
// submission runs to completion even if the user changes mode or resets the
// image mid-flight, and its outcome lands in whatever state the session is
// in by then.
type Controller struct {
	mu       sync.Mutex
	gen      Generator
	mode     domain.Mode
	inFlight bool
	image    *domain.SourceImage
	prompt   string
	result   *domain.Result
	errMsg   string
}

func NewController(gen Generator) *Controller {
	return &Controller{
		gen:  gen,
		mode: domain.ModeEditor,
	}
}

// UploadImage loads a new source image and resets prompt, result and error.
func (c *Controller) UploadImage(img domain.SourceImage) error {
	if len(img.Data) == 0 {
		return domain.ErrUnreadableFile
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = &img
	c.prompt = ""
	c.result = nil
	c.errMsg = ""
	return nil
}

// UploadFailed records an unreadable file. No remote call is made; the
// session shows a generic error and keeps no image.
func (c *Controller) UploadFailed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = nil
	c.prompt = ""
	c.result = nil
	c.errMsg = domain.ErrUnreadableFile.Message
}

// SetMode switches between editor and analyzer. The loaded image survives;
// prompt, result and error do not.
func (c *Controller) SetMode(mode domain.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.prompt = ""
	c.result = nil
	c.errMsg = ""
}

// SetPrompt updates the prompt text without a state transition. Prompt edits
// require a loaded image and are rejected while a submission is in flight.
func (c *Controller) SetPrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return domain.ErrBusy
	}
	if c.image == nil {
		return domain.ErrNoImage
	}
	c.prompt = prompt
	return nil
}

// Submit runs the generation operation matching the current mode. It is
// permitted only with an image loaded, a non-blank prompt, and no other
// submission in flight.
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.inFlight {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, domain.ErrBusy
	}
	if c.image == nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, domain.ErrNoImage
	}
	if strings.TrimSpace(c.prompt) == "" {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, domain.ErrEmptyPrompt
	}
	mode := c.mode
	img := c.image
	prompt := c.prompt
	c.inFlight = true
	c.result = nil
	c.errMsg = ""
	c.mu.Unlock()

	var result domain.Result
	var err error
	switch mode {
	case domain.ModeAnalyzer:
		var text string
		text, err = c.gen.Analyze(ctx, img.Data, img.MIMEType, prompt)
		if err == nil {
			result = domain.TextResult(text)
		}
	default:
		var dataURL string
		dataURL, err = c.gen.EditImage(ctx, img.Data, img.MIMEType, prompt)
		if err == nil {
			mimeType, _, splitErr := datauri.Split(dataURL)
			if splitErr != nil {
				mimeType = ""
			}
			result = domain.ImageResult(dataURL, mimeType)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.errMsg = userMessage(err)
		c.result = nil
		return c.snapshotLocked(), err
	}
	c.result = &result
	c.errMsg = ""
	return c.snapshotLocked(), nil
}

// Reset clears image, prompt, result and error and returns to idle.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = nil
	c.prompt = ""
	c.result = nil
	c.errMsg = ""
}

// Status returns the current view state.
func (c *Controller) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Snapshot returns a copy of the session for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// statusLocked derives the view state the same way the UI does: an in-flight
// submission dominates, then the latest outcome, then image presence.
func (c *Controller) statusLocked() domain.Status {
	switch {
	case c.inFlight:
		return domain.StatusLoading
	case c.result != nil:
		return domain.StatusDone
	case c.errMsg != "":
		return domain.StatusError
	case c.image != nil:
		return domain.StatusReady
	default:
		return domain.StatusIdle
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Mode:         c.mode,
		Status:       c.statusLocked(),
		Prompt:       c.prompt,
		Result:       c.result,
		ErrorMessage: c.errMsg,
	}
	if c.image != nil {
		snap.Filename = c.image.Filename
		snap.ImageDataURL = datauri.Encode(c.image.MIMEType, c.image.Data)
	}
	return snap
}

func userMessage(err error) string {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	var inputErr *domain.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return "Generation failed"
}
