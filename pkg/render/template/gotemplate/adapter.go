package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-portfolio/pkg/render/template"
)

// pongo2 keeps filters in a package level registry.
var filterMu sync.Mutex

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir      string
	templates    fs.FS
	filters      map[string]pongo2.FilterFunction
	trimBlocks   bool
	lstripBlocks bool
	dropNewline  bool
}

// WithBaseDir configures the engine to load templates from a directory on
// disk. Template names, includes, and extends resolve relative to it.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS configures the engine to load templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTrimBlocks removes the first newline after a block tag.
func WithTrimBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.trimBlocks = enabled
	}
}

// WithLStripBlocks strips spaces and tabs from the start of a line up to a
// block tag.
func WithLStripBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.lstripBlocks = enabled
	}
}

// WithKeepTrailingNewline controls whether a single newline at the end of a
// template source survives rendering. pongo2 keeps it; Jinja drops it.
func WithKeepTrailingNewline(keep bool) Option {
	return func(cfg *config) {
		cfg.dropNewline = !keep
	}
}

// WithFilters registers pongo2 filters when the engine loads. Filters that
// already exist in the pongo2 registry are left as they are.
func WithFilters(filters map[string]pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if len(filters) == 0 {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction, len(filters))
		}
		for name, fn := range filters {
			cfg.filters[strings.TrimSpace(name)] = fn
		}
	}
}

// Engine satisfies the template.TemplateRenderer contract using a pongo2
// template set. Templates use pongo2's Django dialect: filter arguments are
// written `join:", "` and loop state is `forloop.Counter`. Autoescaping follows pongo2's global setting, which is on by
// default, so substituted values are HTML escaped unless marked safe.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

// Ensure Engine implements the TemplateRenderer interface.
var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	if cfg.dropNewline {
		for i, loader := range loaders {
			loaders[i] = trailingNewlineLoader{TemplateLoader: loader}
		}
	}

	set := pongo2.NewSet("portfolio", loaders...)
	set.Options.TrimBlocks = cfg.trimBlocks
	set.Options.LStripBlocks = cfg.lstripBlocks

	engine := &Engine{
		templateSet: set,
		templates:   make(map[string]*pongo2.Template),
	}

	for name, fn := range cfg.filters {
		if err := registerFilterOnce(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	return engine, nil
}

// RenderTemplate loads the named template from the configured loaders and
// executes it with data as the context.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	tmpl, err := e.getTemplate(name)
	if err != nil {
		return "", err
	}

	return e.execute(tmpl, data, fmt.Sprintf("template %q", name), out)
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) getTemplate(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}

	e.templates[name] = tmpl
	return tmpl, nil
}

// trailingNewlineLoader strips one trailing newline from every template it
// loads, including templates pulled in through include and extends.
type trailingNewlineLoader struct {
	pongo2.TemplateLoader
}

func (l trailingNewlineLoader) Get(path string) (io.Reader, error) {
	r, err := l.TemplateLoader.Get(path)
	if err != nil {
		return nil, err
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch {
	case bytes.HasSuffix(buf, []byte("\r\n")):
		buf = buf[:len(buf)-2]
	case bytes.HasSuffix(buf, []byte("\n")):
		buf = buf[:len(buf)-1]
	}
	return bytes.NewReader(buf), nil
}

func registerFilterOnce(name string, fn pongo2.FilterFunction) error {
	if name == "" || fn == nil {
		return nil
	}

	filterMu.Lock()
	defer filterMu.Unlock()

	if pongo2.FilterExists(name) {
		return nil
	}
	return pongo2.RegisterFilter(name, fn)
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return convertMapToContext(map[string]any(v))
	case map[string]any:
		return convertMapToContext(v)
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return convertMapToContext(out)
	}

	m, err := jsonToMap(data)
	if err != nil {
		return nil, err
	}
	return convertMapToContext(m)
}

// convertMapToContext keeps keys as written. Top-level keys that are not
// identifiers (such as "Programming Languages") cannot be named from a
// template and pongo2 refuses to execute with them, so they are left out.
func convertMapToContext(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		if !isIdentifier(key) {
			continue
		}
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func isIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

// convertValue copies maps and slices so templates never share the caller's
// containers, and flattens structs into plain maps. Scalars pass through with
// their Go types intact.
func convertValue(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time, *big.Int:
		return v, nil
	case pongo2.Context:
		return convertMap(map[string]any(v))
	case map[string]any:
		return convertMap(v)
	case []any:
		return convertSlice(v)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return value, nil
	}

	raw, err := jsonToAny(value)
	if err != nil {
		return nil, err
	}
	return convertValue(raw)
}

func convertMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func convertSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		converted, err := convertValue(value)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func jsonToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
