package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed starter/*
var starterFiles embed.FS

// Starter file names inside StarterFS.
const (
	StarterData     = "data.json"
	StarterTemplate = "portfolio_template.html"
)

// StarterFS exposes the starter data document and template.
func StarterFS() fs.FS {
	sub, err := fs.Sub(starterFiles, "starter")
	if err != nil {
		return starterFiles
	}
	return sub
}
