package template

import (
	"io"
)

// TemplateRenderer is the seam between the portfolio renderer and the
// template engine. Data passed to RenderTemplate is splatted into the
// template namespace: every top-level key becomes a variable.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
