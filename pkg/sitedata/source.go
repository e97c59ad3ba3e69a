package sitedata

import "path/filepath"

// SourceKind identifies where a data document lives.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Source points the loader at a data document.
type Source interface {
	Location() string
	Kind() SourceKind
}

// fileSource identifies on-disk data documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a document inside the fs.FS
// configured through WithFileSystem.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}
