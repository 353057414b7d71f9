package domain

import "errors"

// InputError reports a request the UI is expected to prevent up front:
// submitting without an image, with a blank prompt, or while another
// submission is still in flight. The message is safe to show to the user.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

var (
	ErrNoImage        = &InputError{Message: "no image selected"}
	ErrEmptyPrompt    = &InputError{Message: "prompt must not be empty"}
	ErrUnknownMode    = &InputError{Message: "unknown mode"}
	ErrBusy           = &InputError{Message: "a submission is already in flight"}
	ErrUnreadableFile = &InputError{Message: "Failed to read image file"}
)

// GenerationError is raised at the generation client boundary. Message is a
// short generic string for the user; Cause carries the real failure and is
// logged, never surfaced.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Cause }

// Causes wrapped into a GenerationError when the remote call itself succeeds
// but the response holds nothing usable. Kept distinct for diagnostics; the
// user-facing message is the same either way.
var (
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrNoTextInResponse  = errors.New("no text part in response")
	ErrNoImageInResponse = errors.New("no inline image part in response")
)

// IsInputError reports whether err is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
