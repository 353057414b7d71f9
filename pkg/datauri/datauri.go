// Package datauri converts binary payloads to and from data: URIs, the
// representation the UI uses for both the uploaded source image and edited
// results.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid data uri")

// Encode renders data as data:<mimeType>;base64,<payload>.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Split separates a base64 data URI into its MIME type and still-encoded
// payload. Only base64-encoded URIs are accepted.
func Split(uri string) (mimeType, payload string, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", "", fmt.Errorf("%w: missing data: prefix", ErrInvalid)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("%w: missing payload separator", ErrInvalid)
	}
	mimeType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", fmt.Errorf("%w: payload is not base64", ErrInvalid)
	}
	if mimeType == "" {
		return "", "", fmt.Errorf("%w: missing mime type", ErrInvalid)
	}
	return mimeType, payload, nil
}

// Decode splits a base64 data URI and decodes its payload into raw bytes.
func Decode(uri string) (mimeType string, data []byte, err error) {
	mimeType, payload, err := Split(uri)
	if err != nil {
		return "", nil, err
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return mimeType, data, nil
}
