package orchestrator

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Transformer mutates normalised data before it reaches the renderer.
// Implementations can derive extra keys or reshape sections for a template.
type Transformer interface {
	Transform(ctx context.Context, data sitedata.Data) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, data sitedata.Data) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, data sitedata.Data) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, data)
}
