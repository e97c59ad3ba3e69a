package render

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-portfolio/pkg/render/template"
	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Renderer turns normalised portfolio data into HTML using a template file.
type Renderer struct {
	logger    *slog.Logger
	newEngine func(dir string) (template.TemplateRenderer, error)
}

// New constructs a Renderer. Without options it renders through a pongo2
// engine with autoescaping and block whitespace control enabled, and drops a
// single trailing newline from each template.
func New(options ...Option) *Renderer {
	r := &Renderer{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		newEngine: defaultEngine,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render renders the template at templatePath with data using the default
// Renderer.
func Render(data sitedata.Data, templatePath string) (string, error) {
	return New().Render(data, templatePath)
}

// Render loads the template at templatePath from its containing directory and
// executes it with every key of data exposed as a top-level variable. The
// rendered text is also copied to each writer in out.
func (r *Renderer) Render(data sitedata.Data, templatePath string, out ...io.Writer) (string, error) {
	if templatePath == "" {
		return "", fmt.Errorf("%w: template path is required", sitedata.ErrNotFound)
	}

	info, err := os.Stat(templatePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("template file %w: %s", sitedata.ErrNotFound, templatePath)
	case err != nil:
		return "", fmt.Errorf("%w: stat template %s: %w", sitedata.ErrIO, templatePath, err)
	case info.IsDir():
		return "", fmt.Errorf("%w: template path %s is a directory", sitedata.ErrIO, templatePath)
	}

	dir, name := filepath.Split(filepath.Clean(templatePath))
	if dir == "" {
		dir = "."
	}

	engine, err := r.newEngine(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", sitedata.ErrTemplate, err)
	}

	r.logger.Debug("rendering template", "dir", dir, "template", name, "keys", len(data))

	html, err := engine.RenderTemplate(name, map[string]any(data), out...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", sitedata.ErrTemplate, err)
	}
	return html, nil
}

func defaultEngine(dir string) (template.TemplateRenderer, error) {
	return gotemplate.New(
		gotemplate.WithBaseDir(dir),
		gotemplate.WithTrimBlocks(true),
		gotemplate.WithLStripBlocks(true),
		gotemplate.WithKeepTrailingNewline(false),
		gotemplate.WithFilters(ContentFilters()),
	)
}
