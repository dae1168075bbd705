package extractor

import (
	"context"
	"fmt"

	"github.com/hellenic-development/palette-extractor/pkg/coolors"
	"github.com/hellenic-development/palette-extractor/pkg/palette"
)

// APIStrategy queries the site's API-style endpoints in order and keeps the
// first response that decodes into at least one palette.
type APIStrategy struct {
	Client *coolors.Client
}

// NewAPIStrategy returns an APIStrategy backed by client.
func NewAPIStrategy(client *coolors.Client) *APIStrategy {
	return &APIStrategy{Client: client}
}

// Name implements Strategy.
func (s *APIStrategy) Name() string { return "api" }

// Extract implements Strategy. Every endpoint failure is swallowed; the
// returned error only summarizes the last one when all endpoints declined.
func (s *APIStrategy) Extract(ctx context.Context, _ int) (palette.List, error) {
	var lastErr error

	for _, endpoint := range s.Client.APIURLs() {
		body, err := s.Client.GetAPI(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}

		if palettes := ParseItems(body); len(palettes) > 0 {
			return palettes, nil
		}
		lastErr = fmt.Errorf("%s: response holds no palettes", endpoint)
	}

	if lastErr == nil {
		return nil, ErrNoPalettes
	}
	return nil, fmt.Errorf("%w: %v", ErrNoPalettes, lastErr)
}
