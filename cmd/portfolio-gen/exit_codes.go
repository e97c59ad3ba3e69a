package main

import (
	"errors"

	"github.com/goliatone/go-portfolio/pkg/scaffold"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Exit codes for portfolio-gen.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page generated
	ExitGeneral = 1 // General/unexpected error, including template errors
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // Missing input file, read or write failure
	ExitParse   = 4 // Data file is not valid JSON/YAML
)

// errUsage marks command line mistakes.
var errUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, errUsage):
		return ExitUsage
	case errors.Is(err, sitedata.ErrParse):
		return ExitParse
	case errors.Is(err, sitedata.ErrNotFound),
		errors.Is(err, sitedata.ErrIO),
		errors.Is(err, scaffold.ErrExists):
		return ExitIO
	default:
		return ExitGeneral
	}
}
