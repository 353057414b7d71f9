package domain

import "strings"

// Mode selects which generation operation a submission runs.
type Mode string

const (
	ModeEditor   Mode = "editor"
	ModeAnalyzer Mode = "analyzer"
)

// ParseMode normalizes free-form user input into a supported mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModeEditor):
		return ModeEditor, nil
	case string(ModeAnalyzer):
		return ModeAnalyzer, nil
	default:
		return "", ErrUnknownMode
	}
}

// Status is the view state of a session.
type Status string

const (
	StatusIdle    Status = "idle"    // no image loaded
	StatusReady   Status = "ready"   // image loaded, nothing in flight
	StatusLoading Status = "loading" // submission in flight
	StatusError   Status = "error"   // last submission failed
	StatusDone    Status = "done"    // last submission succeeded
)

// SourceImage is the uploaded file held in memory for the duration of a
// session. It is never written to disk.
type SourceImage struct {
	Data     []byte
	MIMEType string
	Filename string
}

// ResultKind discriminates the Result union.
type ResultKind string

const (
	ResultImage ResultKind = "image"
	ResultText  ResultKind = "text"
)

// Result is the outcome of a successful submission. Exactly one payload is
// populated, per Kind: DataURL+MIMEType for an edited image, Text for an
// analysis. Construct through ImageResult or TextResult only.
type Result struct {
	Kind     ResultKind `json:"kind"`
	DataURL  string     `json:"data_url,omitempty"`
	MIMEType string     `json:"mime_type,omitempty"`
	Text     string     `json:"text,omitempty"`
}

func ImageResult(dataURL, mimeType string) Result {
	return Result{Kind: ResultImage, DataURL: dataURL, MIMEType: mimeType}
}

func TextResult(text string) Result {
	return Result{Kind: ResultText, Text: text}
}
