// Package template defines the engine contract the portfolio renderer relies
// on. The pongo2-backed implementation lives in the gotemplate subpackage.
package template
