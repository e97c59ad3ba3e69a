package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/internal/fileutil"
	internalLoader "github.com/goliatone/go-portfolio/internal/sitedata/loader"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Renderer executes a template file against normalised data.
type Renderer interface {
	Render(data sitedata.Data, templatePath string, out ...io.Writer) (string, error)
}

// Ensure the default renderer satisfies the contract.
var _ Renderer = (*render.Renderer)(nil)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom data loader.
func WithLoader(loader sitedata.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRenderer injects a custom renderer.
func WithRenderer(renderer Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithTransformer registers a Transformer that runs after normalisation and
// before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithClock overrides the time source the default loader uses for
// current_year. Ignored when WithLoader is supplied.
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithLogger routes pipeline logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from data file to rendered page.
// Missing dependencies are initialised with the built-in implementations so
// callers can start with a single constructor call.
type Orchestrator struct {
	loader      sitedata.Loader
	renderer    Renderer
	transformer Transformer
	clock       func() time.Time
	logger      *slog.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run.
type Request struct {
	// DataPath is the JSON (or YAML) data document.
	DataPath string

	// TemplatePath is the template file. Includes and extends resolve relative
	// to its directory.
	TemplatePath string

	// OutputPath receives the rendered page. When empty Generate renders
	// without writing.
	OutputPath string
}

// Result reports what Generate produced.
type Result struct {
	OutputPath string
	HTML       []byte
}

// Generate executes the loader → renderer → writer sequence. Both input files
// are checked up front and reported as sitedata.ErrNotFound. The output file
// is replaced atomically and only after rendering succeeded, so a failed run
// never leaves a partial or modified page behind.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	html, err := o.Render(ctx, req)
	if err != nil {
		return Result{}, err
	}

	result := Result{OutputPath: req.OutputPath, HTML: html}
	if req.OutputPath == "" {
		return result, nil
	}

	if err := writeOutput(req.OutputPath, html); err != nil {
		return Result{}, err
	}

	o.logger.Info("portfolio written", "output", req.OutputPath, "bytes", len(html))
	return result, nil
}

// Render loads and renders the request without touching OutputPath.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := requireFile(req.DataPath, "data file"); err != nil {
		return nil, err
	}
	if err := requireFile(req.TemplatePath, "template file"); err != nil {
		return nil, err
	}

	o.logger.Debug("loading data", "path", req.DataPath)
	data, err := o.loader.Load(ctx, sitedata.SourceFromFile(req.DataPath))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load data: %w", err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, data); err != nil {
			return nil, fmt.Errorf("orchestrator: transform data: %w", err)
		}
	}

	o.logger.Debug("rendering template", "path", req.TemplatePath)
	html, err := o.renderer.Render(data, req.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return []byte(html), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = internalLoader.New(sitedata.NewLoaderOptions(sitedata.WithClock(o.clock)))
	}
	if o.renderer == nil {
		o.renderer = render.New(render.WithLogger(o.logger))
	}
}

// requireFile reports a missing input with the path that was looked up.
func requireFile(path, label string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s path is required: %w", label, sitedata.ErrNotFound)
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %w: %s", label, sitedata.ErrNotFound, path)
	default:
		return fmt.Errorf("%w: %s %s: %w", sitedata.ErrIO, label, path, err)
	}
}

func writeOutput(path string, html []byte) error {
	if err := fileutil.WriteAtomic(path, html); err != nil {
		return fmt.Errorf("%w: write output: %w", sitedata.ErrIO, err)
	}
	return nil
}
