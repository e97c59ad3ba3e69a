package render

import (
	"bytes"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	contentOnce     sync.Once
	contentPolicy   *bluemonday.Policy
	contentMarkdown goldmark.Markdown
)

// ContentFilters returns the filters registered on every portfolio template:
//
//	{{ bio|markdown }}   Markdown rendered to sanitised HTML
//	{{ blurb|sanitize }} user supplied HTML reduced to a safe subset
//
// Both mark their output safe, so autoescaping does not apply to it.
func ContentFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"markdown": filterMarkdown,
		"sanitize": filterSanitize,
	}
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	policy, _ := contentTools()
	return pongo2.AsSafeValue(strings.TrimSpace(policy.Sanitize(in.String()))), nil
}

func filterMarkdown(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	policy, md := contentTools()

	var buf bytes.Buffer
	if err := md.Convert([]byte(in.String()), &buf); err != nil {
		return nil, &pongo2.Error{Sender: "filter:markdown", OrigError: err}
	}
	return pongo2.AsSafeValue(string(bytes.TrimSpace(policy.SanitizeBytes(buf.Bytes())))), nil
}

func contentTools() (*bluemonday.Policy, goldmark.Markdown) {
	contentOnce.Do(func() {
		contentPolicy = bluemonday.UGCPolicy()
		contentMarkdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return contentPolicy, contentMarkdown
}
