package render

import (
	"log/slog"

	"github.com/goliatone/go-portfolio/pkg/render/template"
)

// Option customises a Renderer.
type Option func(*Renderer)

// WithLogger routes debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEngineFactory swaps the template engine. The factory receives the
// directory containing the template being rendered.
func WithEngineFactory(factory func(dir string) (template.TemplateRenderer, error)) Option {
	return func(r *Renderer) {
		if factory != nil {
			r.newEngine = factory
		}
	}
}
