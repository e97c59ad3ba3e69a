// Package fileutil provides the file helpers shared by the generator and the
// scaffolder.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
)

// DefaultFileMode is applied to files WriteAtomic creates.
const DefaultFileMode fs.FileMode = 0o644

// WriteAtomic replaces path with data through a temp file and rename, so
// readers never observe a partially written file and a failed write leaves any
// previous content in place. Existing files keep their mode; new files get
// DefaultFileMode.
func WriteAtomic(path string, data []byte) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if !existed {
		// atomic.WriteFile leaves new files with the temp file's 0600 mode.
		if err := os.Chmod(path, DefaultFileMode); err != nil {
			return fmt.Errorf("chmod %s: %w", path, err)
		}
	}
	return nil
}

// Exists reports whether anything is present at path. Errors other than
// "does not exist" count as present so callers do not overwrite what they
// cannot inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
