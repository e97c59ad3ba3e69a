package sitedata

import "errors"

// Error classes shared by the loader, renderer, and generator. Callers wrap
// them with fmt.Errorf("%w: ...: %w", class, cause) so errors.Is matches both
// the class and the underlying cause.
var (
	ErrNotFound = errors.New("not found")
	ErrParse    = errors.New("parse error")
	ErrTemplate = errors.New("template error")
	ErrIO       = errors.New("i/o error")
)
