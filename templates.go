package portfolio

import (
	"io/fs"

	"github.com/goliatone/go-portfolio/pkg/scaffold"
)

// StarterFS exposes the starter data document and template written by
// `portfolio-gen init`, so callers can reuse or extend them without importing
// the scaffold package directly.
func StarterFS() fs.FS {
	return scaffold.StarterFS()
}
