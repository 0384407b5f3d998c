package ai

import (
	"context"

	"github.com/bryanwahyu/promptlens/internal/domain/image"
)

// Request is a single describe-this-image call.
type Request struct {
	Image image.DataURI
}

type Client interface {
	Describe(ctx context.Context, req Request) (Reply, error)
}
