package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/goliatone/go-portfolio/pkg/orchestrator"
	"github.com/goliatone/go-portfolio/pkg/preview"
	"github.com/goliatone/go-portfolio/pkg/scaffold"
)

// run dispatches to a command and returns the process exit code. args
// includes the program name.
func run(ctx context.Context, args []string, env *Environment) int {
	if env == nil {
		env = DefaultEnv()
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	cmd := ""
	if len(rest) > 0 {
		switch rest[0] {
		case "init", "serve", "help":
			cmd, rest = rest[0], rest[1:]
		}
	}

	var err error
	switch cmd {
	case "init":
		err = runInit(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "help":
		_, fs, _ := parseGenerateFlags(nil, env)
		printUsage(env.Stdout, fs)
	default:
		err = runGenerate(ctx, rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, fs, err := parseGenerateFlags(args, env)
	if err != nil {
		return usageOrHelp(err, env, fs)
	}
	if f.version {
		fmt.Fprintf(env.Stdout, "portfolio-gen %s\n", Version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	orch := newOrchestrator(env, f.common)
	result, err := orch.Generate(ctx, orchestrator.Request{
		DataPath:     f.input.data,
		TemplatePath: f.input.template,
		OutputPath:   f.output,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Portfolio generated: %s\n", result.OutputPath)
	return nil
}

func runInit(ctx context.Context, args []string, env *Environment) error {
	f, fs, err := parseInitFlags(args)
	if err != nil {
		return usageOrHelp(err, env, fs)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	opts := scaffold.Options{Dir: f.dir, Force: f.force}
	if f.interactive && env.Prompter != nil {
		opts.Prompter = env.Prompter()
	}

	logger := newLogger(env.Stderr, f.common.verbose)
	result, err := scaffold.Init(ctx, opts)
	if err != nil {
		return err
	}
	logger.Debug("starter files written", "data", result.DataPath, "template", result.TemplatePath)

	fmt.Fprintf(env.Stdout, "Created %s\n", result.DataPath)
	fmt.Fprintf(env.Stdout, "Created %s\n", result.TemplatePath)
	return nil
}

func runServe(ctx context.Context, args []string, env *Environment) error {
	f, fs, err := parseServeFlags(args, env)
	if err != nil {
		return usageOrHelp(err, env, fs)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	logger := newLogger(env.Stderr, f.common.verbose)
	orch := newOrchestrator(env, f.common)
	handler := preview.NewHandler(orch, orchestrator.Request{
		DataPath:     f.input.data,
		TemplatePath: f.input.template,
	}, logger)

	fmt.Fprintf(env.Stdout, "Serving %s on http://%s\n", f.input.template, f.addr)
	return preview.Serve(ctx, f.addr, handler, logger)
}

func newOrchestrator(env *Environment, common commonFlags) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(newLogger(env.Stderr, common.verbose)),
	}
	if env.Now != nil {
		opts = append(opts, orchestrator.WithClock(env.Now))
	}
	return orchestrator.New(opts...)
}

// newLogger writes text records to w. Only warnings surface unless verbose
// is set, which keeps stderr to the single error line on failure.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func usageOrHelp(err error, env *Environment, fs *flag.FlagSet) error {
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout, fs)
		return err
	}
	return fmt.Errorf("%w: %w", errUsage, err)
}
