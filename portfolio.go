package portfolio

import (
	"context"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Data is the normalised template context; alias exported via the root
// package for convenience.
type Data = sitedata.Data

// Request describes one generation run.
type Request = orchestrator.Request

// Result reports what a generation run produced.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Load reads the JSON (or YAML) document at path and returns it normalised.
func Load(path string) (Data, error) {
	return NewLoader().Load(context.Background(), sitedata.SourceFromFile(path))
}

// Render renders the template at templatePath against data with HTML
// autoescaping and block whitespace control.
func Render(data Data, templatePath string) (string, error) {
	return render.Render(data, templatePath)
}

// GenerateHTML loads the data document, renders the template, and returns
// the page without writing it. It is the simplest entry point for callers
// that just want HTML output.
func GenerateHTML(ctx context.Context, dataPath, templatePath string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Render(ctx, orchestrator.Request{
		DataPath:     dataPath,
		TemplatePath: templatePath,
	})
}

// Generate renders the page and writes it to outputPath.
func Generate(ctx context.Context, dataPath, templatePath, outputPath string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		DataPath:     dataPath,
		TemplatePath: templatePath,
		OutputPath:   outputPath,
	})
}
