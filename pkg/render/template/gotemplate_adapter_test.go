package template_test

import (
	"embed"
	"io"
	"io/fs"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-portfolio/pkg/render/template/gotemplate"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

//go:embed testdata/templates/*.html
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello.html", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_Filters(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	shout := func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(strings.ToUpper(in.String()) + "!"), nil
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithFilters(map[string]pongo2.FilterFunction{"shout": shout}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter.html", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}

	// A second engine reuses the registered filter instead of failing.
	if _, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithFilters(map[string]pongo2.FilterFunction{"shout": shout}),
	); err != nil {
		t.Fatalf("second engine: %v", err)
	}
}

func TestGoTemplateEngine_BlockWhitespaceControl(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("list.html", map[string]any{
		"skills": []any{"Go", "SQL & Postgres"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "list.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_DropsTrailingNewline(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithTrimBlocks(true),
		gotemplate.WithLStripBlocks(true),
		gotemplate.WithKeepTrailingNewline(false),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("list.html", map[string]any{
		"skills": []any{"Go", "SQL & Postgres"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "list-trimmed.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	extended, err := engine.RenderTemplate("child.html", map[string]any{
		"site": map[string]any{"title": "Ada"},
	})
	if err != nil {
		t.Fatalf("render child: %v", err)
	}
	if want := "<title>Ada</title>"; extended != want {
		t.Fatalf("expected %q, got %q", want, extended)
	}
}

func TestGoTemplateEngine_PassesBigIntegers(t *testing.T) {
	engine := newEngine(t)

	n, _ := new(big.Int).SetString("12345678901234567890", 10)
	result, err := engine.RenderTemplate("hello.html", map[string]any{"name": n})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hello 12345678901234567890!"; result != want {
		t.Fatalf("expected %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_KeepsKeysVerbatim(t *testing.T) {
	engine := newEngine(t)

	for i := 0; i < 20; i++ {
		result, err := engine.RenderTemplate("hello.html", map[string]any{
			"name":                  "Ada",
			"name ":                 "Padded",
			" name":                 "Leading",
			"Programming Languages": []any{"Go"},
		})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if want := "Hello Ada!"; result != want {
			t.Fatalf("run %d: expected %q, got %q", i, want, result)
		}
	}
}

func TestGoTemplateEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape.html", map[string]any{
		"site": map[string]any{"title": "<b>X</b>"},
		"raw":  "<i>ok</i>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "&lt;b&gt;X&lt;/b&gt;|<i>ok</i>"; result != want {
		t.Fatalf("expected %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_KeepsScalarTypes(t *testing.T) {
	engine := newEngine(t)

	type project struct {
		Name string `json:"name"`
	}

	result, err := engine.RenderTemplate("scalars.html",
		map[string]any{"years": int64(7), "project": project{Name: "folio"}},
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "7 senior folio"; result != want {
		t.Fatalf("expected %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_Extends(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("child.html", map[string]any{
		"site": map[string]any{"title": "Ada"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(result, "<title>Ada</title>") {
		t.Fatalf("expected extended layout, got %q", result)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("missing.html", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderTemplate("broken.html", nil); err == nil {
		t.Fatalf("expected error for template syntax error")
	}
	if _, err := engine.RenderTemplate("unknown-filter.html", nil); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
	_, err := engine.RenderTemplate("bad-lookup.html", map[string]any{
		"site": map[string]any{"title": "Ada"},
	})
	if err == nil || !strings.Contains(err.Error(), "execute") {
		t.Fatalf("expected execution error for attribute lookup on a string, got %v", err)
	}
}

func TestGoTemplateEngine_RequiresLoader(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error when neither base dir nor fs is configured")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithTrimBlocks(true),
		gotemplate.WithLStripBlocks(true),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
