package portfolio

import (
	internalLoader "github.com/goliatone/go-portfolio/internal/sitedata/loader"
	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...sitedata.LoaderOption) sitedata.Loader {
	cfg := sitedata.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
