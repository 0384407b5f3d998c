package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/promptlens/internal/domain/ai"
	"github.com/bryanwahyu/promptlens/internal/domain/image"
)

// Service turns an uploaded image into an image-generation prompt.
// A nil client means the model credential was not configured.
type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

// Configured reports whether a model client is available.
func (s *Service) Configured() bool { return s.client != nil }

// Analyze validates the data URI, makes exactly one model call and returns
// the first text block of the reply. An empty reply is not an error.
func (s *Service) Analyze(ctx context.Context, dataURI string) (string, error) {
	if strings.TrimSpace(dataURI) == "" {
		return "", image.ErrRequired
	}
	if s.client == nil {
		return "", ai.ErrNotConfigured
	}
	img, err := image.Parse(dataURI)
	if err != nil {
		return "", err
	}

	reply, err := s.client.Describe(ctx, ai.Request{Image: img})
	if err != nil {
		return "", fmt.Errorf("analysis failed: %w", err)
	}
	return reply.FirstText(), nil
}
