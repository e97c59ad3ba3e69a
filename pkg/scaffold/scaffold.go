// Package scaffold writes a starter data document and template so a new
// portfolio renders on the first run.
package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-portfolio/internal/fileutil"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// ErrExists is returned when a target file is already present and Force is off.
var ErrExists = errors.New("file already exists")

// Options configures Init.
type Options struct {
	// Dir receives the files. Defaults to the working directory.
	Dir string

	// DataName and TemplateName override the written file names.
	DataName     string
	TemplateName string

	// Force overwrites existing files.
	Force bool

	// Prompter, when set, asks for the site title, description, and
	// programming languages before the data file is written.
	Prompter PromptDriver
}

// Result lists the files Init wrote.
type Result struct {
	DataPath     string
	TemplatePath string
}

// Init writes the starter data document and template into opts.Dir.
func Init(ctx context.Context, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	result := Result{
		DataPath:     filepath.Join(dir, nonEmpty(opts.DataName, StarterData)),
		TemplatePath: filepath.Join(dir, nonEmpty(opts.TemplateName, StarterTemplate)),
	}

	if !opts.Force {
		for _, path := range []string{result.DataPath, result.TemplatePath} {
			if fileutil.Exists(path) {
				return Result{}, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
			}
		}
	}

	starter := StarterFS()
	data, err := fs.ReadFile(starter, StarterData)
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: read starter data: %w", err)
	}
	tmpl, err := fs.ReadFile(starter, StarterTemplate)
	if err != nil {
		return Result{}, fmt.Errorf("scaffold: read starter template: %w", err)
	}

	if opts.Prompter != nil {
		data, err = personalise(ctx, data, opts.Prompter)
		if err != nil {
			return Result{}, err
		}
	}

	if err := fileutil.WriteAtomic(result.DataPath, data); err != nil {
		return Result{}, fmt.Errorf("%w: %w", sitedata.ErrIO, err)
	}
	if err := fileutil.WriteAtomic(result.TemplatePath, tmpl); err != nil {
		return Result{}, fmt.Errorf("%w: %w", sitedata.ErrIO, err)
	}
	return result, nil
}

func personalise(ctx context.Context, starter []byte, prompter PromptDriver) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(starter, &doc); err != nil {
		return nil, fmt.Errorf("scaffold: decode starter data: %w", err)
	}
	site, ok := doc[sitedata.KeySite].(map[string]any)
	if !ok {
		site = map[string]any{}
		doc[sitedata.KeySite] = site
	}

	title, err := prompter.Input(ctx, InputConfig{
		Message:   "Site title",
		Default:   sitedata.DefaultTitle,
		Validator: requireText,
	})
	if err != nil {
		return nil, err
	}
	description, err := prompter.Input(ctx, InputConfig{
		Message: "Site description",
		Default: sitedata.DefaultDescription,
	})
	if err != nil {
		return nil, err
	}
	languages, err := prompter.Input(ctx, InputConfig{
		Message: "Programming languages",
		Help:    "Comma separated, e.g. Go, Python",
		Default: "Go, Python",
	})
	if err != nil {
		return nil, err
	}

	site[sitedata.KeyTitle] = strings.TrimSpace(title)
	site[sitedata.KeyDescription] = strings.TrimSpace(description)
	doc[sitedata.SourceKeyProgrammingLanguages] = splitList(languages)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("scaffold: encode data: %w", err)
	}
	return append(out, '\n'), nil
}

func requireText(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

func splitList(raw string) []any {
	out := []any{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
