package main

import (
	"io"
	"os"
	"time"

	"github.com/goliatone/go-portfolio/pkg/scaffold"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Prompter func() scaffold.PromptDriver
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Getenv:   os.Getenv,
		Prompter: scaffold.NewSurveyDriver,
	}
}
