//go:generate go run go.uber.org/mock/mockgen -source=uploader.go -destination=../mocks/mock_media_store.go -package=mocks

// Package media talks to the external image store. The store receives
// raw image bytes and answers with a stable, retrievable URL; the encoded
// payload itself is never persisted on our side.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chatline/errors"

	"github.com/gabriel-vasile/mimetype"
)

type IMediaStore interface {
	Upload(ctx context.Context, encoded string) (string, error)
}

// HTTPMediaStore uploads images over HTTP. The client timeout bounds the
// whole call so a dead image store fails the request instead of hanging
// it.
type HTTPMediaStore struct {
	uploadURL string
	client    *http.Client
	log       *slog.Logger
}

func NewHTTPMediaStore(uploadURL string, timeout time.Duration, log *slog.Logger) *HTTPMediaStore {
	return &HTTPMediaStore{
		uploadURL: uploadURL,
		client:    &http.Client{Timeout: timeout},
		log:       log,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload decodes a base64 payload (a data URL prefix is tolerated),
// verifies it actually is an image, and posts the bytes to the store.
// Decoding problems are the caller's fault; anything past that point is
// an upstream failure.
func (s *HTTPMediaStore) Upload(ctx context.Context, encoded string) (string, error) {
	data, err := decodePayload(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: got %s", errors.ErrNotAnImage, mtype.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", mtype.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: media store unreachable: %v", errors.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: media store answered %d", errors.ErrUpstream, resp.StatusCode)
	}

	var out uploadResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: invalid media store response: %v", errors.ErrUpstream, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: media store returned no url", errors.ErrUpstream)
	}

	s.log.Debug("Image uploaded", "size", len(data), "type", mtype.String())
	return out.URL, nil
}

// decodePayload accepts both a bare base64 string and a
// "data:image/png;base64,..." data URL.
func decodePayload(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %v", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	return data, nil
}
