package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/goliatone/go-portfolio/pkg/sitedata"
)

// Loader implements sitedata.Loader by reading from the operating system or
// an fs.FS and decoding JSON or YAML. Construction helpers live in the
// top-level portfolio package.
type Loader struct {
	fs    fs.FS
	clock func() time.Time
}

// Ensure the implementation satisfies the public interface.
var _ sitedata.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options sitedata.LoaderOptions) sitedata.Loader {
	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Loader{
		fs:    options.FileSystem,
		clock: clock,
	}
}

// Load reads the source, decodes it, and returns the normalised Data.
func (l *Loader) Load(ctx context.Context, src sitedata.Source) (sitedata.Data, error) {
	if src == nil {
		return nil, errors.New("sitedata loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case sitedata.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case sitedata.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = fmt.Errorf("sitedata loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, classifyReadErr(src.Location(), err)
	}

	raw, err := decode(data, src.Location())
	if err != nil {
		return nil, err
	}
	return sitedata.Normalize(raw, l.clock()), nil
}

func classifyReadErr(location string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("data file %w: %s: %w", sitedata.ErrNotFound, location, err)
	default:
		return fmt.Errorf("%w: read data file %s: %w", sitedata.ErrIO, location, err)
	}
}
