package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// Defaults for the generate command. Environment variables override them and
// explicit flags override both.
const (
	defaultData     = "data.json"
	defaultTemplate = "portfolio_template.html"
	defaultOutput   = "index.html"
	defaultAddr     = "127.0.0.1:8080"

	envData     = "PORTFOLIO_DATA"
	envTemplate = "PORTFOLIO_TEMPLATE"
	envOutput   = "PORTFOLIO_OUTPUT"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	verbose bool
}

// inputFlags locate the data document and template.
type inputFlags struct {
	data     string
	template string
}

type generateFlags struct {
	common  commonFlags
	input   inputFlags
	output  string
	version bool
}

type serveFlags struct {
	common commonFlags
	input  inputFlags
	addr   string
}

type initFlags struct {
	common      commonFlags
	dir         string
	force       bool
	interactive bool
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

// addInputFlags adds --data and --template, seeded from the environment.
func addInputFlags(fs *flag.FlagSet, f *inputFlags, env *Environment) {
	fs.StringVar(&f.data, "data", envOr(env, envData, defaultData), "path to the portfolio JSON data file")
	fs.StringVar(&f.template, "template", envOr(env, envTemplate, defaultTemplate), "path to the HTML template")
}

func parseGenerateFlags(args []string, env *Environment) (*generateFlags, *flag.FlagSet, error) {
	f := &generateFlags{}
	fs := newFlagSet("portfolio-gen")
	addInputFlags(fs, &f.input, env)
	fs.StringVar(&f.output, "output", envOr(env, envOutput, defaultOutput), "path to the generated HTML file")
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	return f, fs, fs.Parse(args)
}

func parseServeFlags(args []string, env *Environment) (*serveFlags, *flag.FlagSet, error) {
	f := &serveFlags{}
	fs := newFlagSet("portfolio-gen serve")
	addInputFlags(fs, &f.input, env)
	fs.StringVar(&f.addr, "addr", defaultAddr, "address the preview server listens on")
	addCommonFlags(fs, &f.common)
	return f, fs, fs.Parse(args)
}

func parseInitFlags(args []string) (*initFlags, *flag.FlagSet, error) {
	f := &initFlags{}
	fs := newFlagSet("portfolio-gen init")
	fs.StringVar(&f.dir, "dir", ".", "directory to write the starter files into")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite existing files")
	fs.BoolVarP(&f.interactive, "interactive", "i", false, "prompt for site details")
	addCommonFlags(fs, &f.common)
	return f, fs, fs.Parse(args)
}

func envOr(env *Environment, key, fallback string) string {
	if env != nil && env.Getenv != nil {
		if value := env.Getenv(key); value != "" {
			return value
		}
	}
	return fallback
}
