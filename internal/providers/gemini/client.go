// Package gemini wraps the Google Gemini API behind the two operations the
// session controller drives: analyzing an image and editing one.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"imagestudio/internal/domain"
	"imagestudio/pkg/datauri"
)

const (
	DefaultAnalyzeModel = "gemini-2.5-flash"
	DefaultEditModel    = "gemini-2.5-flash-image"
)

// User-facing failure messages. The real cause is logged, never returned.
const (
	analyzeFailedMessage = "Failed to analyze image"
	editFailedMessage    = "Failed to edit image"
)

// contentGenerator is the slice of the genai SDK the client depends on.
// *genai.Models satisfies it; tests substitute a stub.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options configures a Client. APIKey is required; model names fall back to
// the package defaults.
type Options struct {
	APIKey       string
	AnalyzeModel string
	EditModel    string
	Logger       zerolog.Logger
}

// Client is an explicitly constructed Gemini facade. It is stateless across
// calls and safe for concurrent use.
type Client struct {
	gen          contentGenerator
	analyzeModel string
	editModel    string
	logger       zerolog.Logger
}

// NewClient builds a Client over the Gemini API backend.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newWithGenerator(sdk.Models, opts), nil
}

func newWithGenerator(gen contentGenerator, opts Options) *Client {
	analyzeModel := opts.AnalyzeModel
	if analyzeModel == "" {
		analyzeModel = DefaultAnalyzeModel
	}
	editModel := opts.EditModel
	if editModel == "" {
		editModel = DefaultEditModel
	}
	return &Client{
		gen:          gen,
		analyzeModel: analyzeModel,
		editModel:    editModel,
		logger:       opts.Logger,
	}
}

// Analyze sends the image and prompt to the text-output model and returns the
// first text part of the response unchanged.
func (c *Client) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	resp, err := c.gen.GenerateContent(ctx, c.analyzeModel, requestContents(image, mimeType, prompt), nil)
	if err != nil {
		return "", c.failure("analyze", c.analyzeModel, analyzeFailedMessage, err)
	}
	text, err := firstText(resp)
	if err != nil {
		return "", c.failure("analyze", c.analyzeModel, analyzeFailedMessage, err)
	}
	return text, nil
}

// EditImage sends the image and prompt to the image-output model, scans the
// response parts in order for the first inline image, and returns it as a
// data URI. The model may interleave text and image parts; only the first
// image counts.
func (c *Client) EditImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := c.gen.GenerateContent(ctx, c.editModel, requestContents(image, mimeType, prompt), config)
	if err != nil {
		return "", c.failure("edit", c.editModel, editFailedMessage, err)
	}
	blob, err := firstInlineImage(resp)
	if err != nil {
		return "", c.failure("edit", c.editModel, editFailedMessage, err)
	}
	format := blob.MIMEType
	if format == "" {
		format = "image/png"
	}
	return datauri.Encode(format, blob.Data), nil
}

func requestContents(image []byte, mimeType, prompt string) []*genai.Content {
	return []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: image, MIMEType: mimeType}},
			{Text: prompt},
		},
	}}
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	parts, err := candidateParts(resp)
	if err != nil {
		return "", err
	}
	for _, part := range parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", domain.ErrNoTextInResponse
}

func firstInlineImage(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	parts, err := candidateParts(resp)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, nil
		}
	}
	return nil, domain.ErrNoImageInResponse
}

func candidateParts(resp *genai.GenerateContentResponse) ([]*genai.Part, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, domain.ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts, nil
}

func (c *Client) failure(op, model, message string, cause error) error {
	c.logger.Error().
		Err(cause).
		Str("op", op).
		Str("model", model).
		Msg("gemini call failed")
	return &domain.GenerationError{Message: message, Cause: cause}
}
