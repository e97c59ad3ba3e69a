package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-portfolio/pkg/scaffold"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

const pageTemplate = "<h1>{{ site.title }}</h1><p>{{ site.description }}</p><footer>{{ current_year }}</footer>"

func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
	}
	return env, stdout, stderr
}

type fakePrompter struct {
	answers map[string]string
}

func (f fakePrompter) Input(_ context.Context, cfg scaffold.InputConfig) (string, error) {
	if answer, ok := f.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteJSON(t, dir, "data.json", map[string]any{
		"site": map[string]any{"title": "Ada <Dev>"},
	})
	tmpl := testsupport.WriteFile(t, dir, "page.html", pageTemplate)
	out := filepath.Join(dir, "index.html")

	env, stdout, stderr := testEnv(nil)
	code := run(context.Background(), []string{"portfolio-gen", "--data", data, "--template", tmpl, "--output", out}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}

	if got, want := stdout.String(), "Portfolio generated: "+out+"\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
	if stderr.Len() != 0 {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}

	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "<h1>Ada &lt;Dev&gt;</h1><p>Personal portfolio</p><footer>2024</footer>"
	if string(page) != want {
		t.Fatalf("page = %q, want %q", page, want)
	}
}

func TestRunGenerateUsesEnvironmentDefaults(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteJSON(t, dir, "site.json", map[string]any{})
	tmpl := testsupport.WriteFile(t, dir, "page.html", pageTemplate)
	envOut := filepath.Join(dir, "env.html")
	flagOut := filepath.Join(dir, "flag.html")

	env, stdout, stderr := testEnv(map[string]string{
		envData:     data,
		envTemplate: tmpl,
		envOutput:   envOut,
	})

	if code := run(context.Background(), []string{"portfolio-gen"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if _, err := os.Stat(envOut); err != nil {
		t.Fatalf("expected output from environment path: %v", err)
	}

	stdout.Reset()
	if code := run(context.Background(), []string{"portfolio-gen", "--output", flagOut}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), flagOut) {
		t.Fatalf("flag should override environment, stdout = %q", stdout.String())
	}
}

func TestRunGenerateFailures(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteJSON(t, dir, "data.json", map[string]any{})
	broken := testsupport.WriteFile(t, dir, "broken.json", `{"site": `)
	tmpl := testsupport.WriteFile(t, dir, "page.html", pageTemplate)
	badTmpl := testsupport.WriteFile(t, dir, "bad.html", "{% if %}")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing data",
			args:     []string{"--data", filepath.Join(dir, "nope.json"), "--template", tmpl},
			wantCode: ExitIO,
			wantErr:  "data file not found",
		},
		{
			name:     "missing template",
			args:     []string{"--data", data, "--template", filepath.Join(dir, "nope.html")},
			wantCode: ExitIO,
			wantErr:  "template file not found",
		},
		{
			name:     "malformed data",
			args:     []string{"--data", broken, "--template", tmpl},
			wantCode: ExitParse,
			wantErr:  "parse",
		},
		{
			name:     "template syntax",
			args:     []string{"--data", data, "--template", badTmpl},
			wantCode: ExitGeneral,
			wantErr:  "template",
		},
		{
			name:     "unknown flag",
			args:     []string{"--nope"},
			wantCode: ExitUsage,
			wantErr:  "unknown flag",
		},
		{
			name:     "positional argument",
			args:     []string{"extra"},
			wantCode: ExitUsage,
			wantErr:  "unexpected argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "index.html")
			env, stdout, stderr := testEnv(nil)

			args := append([]string{"portfolio-gen"}, tt.args...)
			args = append(args, "--output", out)
			code := run(context.Background(), args, env)

			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Fatalf("unexpected stdout: %q", stdout.String())
			}
			msg := stderr.String()
			if !strings.HasPrefix(msg, "error: ") || strings.Count(msg, "\n") != 1 {
				t.Fatalf("stderr should be a single error line, got %q", msg)
			}
			if !strings.Contains(strings.ToLower(msg), tt.wantErr) {
				t.Fatalf("stderr %q does not mention %q", msg, tt.wantErr)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Fatalf("output must not be written on failure, stat err = %v", err)
			}
		})
	}
}

func TestRunGenerateMissingDataMessage(t *testing.T) {
	dir := t.TempDir()
	tmpl := testsupport.WriteFile(t, dir, "page.html", pageTemplate)
	missing := filepath.Join(dir, "nope.json")

	env, _, stderr := testEnv(nil)
	code := run(context.Background(), []string{"portfolio-gen", "--data", missing, "--template", tmpl}, env)
	if code != ExitIO {
		t.Fatalf("exit code = %d, want %d", code, ExitIO)
	}
	if got, want := stderr.String(), "error: data file not found: "+missing+"\n"; got != want {
		t.Fatalf("stderr = %q, want %q", got, want)
	}
}

func TestRunGenerateKeepsExistingOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	data := testsupport.WriteJSON(t, dir, "data.json", map[string]any{})
	badTmpl := testsupport.WriteFile(t, dir, "bad.html", "{{ site.title|nosuchfilter }}")
	out := testsupport.WriteFile(t, dir, "index.html", "previous")

	env, _, _ := testEnv(nil)
	code := run(context.Background(), []string{"portfolio-gen", "--data", data, "--template", badTmpl, "--output", out}, env)
	if code == ExitSuccess {
		t.Fatal("expected failure")
	}

	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(page) != "previous" {
		t.Fatalf("existing output modified: %q", page)
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	env, stdout, _ := testEnv(nil)
	if code := run(context.Background(), []string{"portfolio-gen", "--version"}, env); code != ExitSuccess {
		t.Fatalf("version exit code = %d", code)
	}
	if got := stdout.String(); got != "portfolio-gen "+Version+"\n" {
		t.Fatalf("version output = %q", got)
	}

	for _, args := range [][]string{{"--help"}, {"help"}, {"init", "-h"}} {
		env, stdout, stderr := testEnv(nil)
		code := run(context.Background(), append([]string{"portfolio-gen"}, args...), env)
		if code != ExitSuccess {
			t.Fatalf("%v exit code = %d", args, code)
		}
		if !strings.Contains(stdout.String(), "Usage: portfolio-gen") {
			t.Fatalf("%v printed no usage: %q", args, stdout.String())
		}
		if stderr.Len() != 0 {
			t.Fatalf("%v wrote stderr: %q", args, stderr.String())
		}
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	env, stdout, stderr := testEnv(nil)

	if code := run(context.Background(), []string{"portfolio-gen", "init", "--dir", dir}, env); code != ExitSuccess {
		t.Fatalf("init exit code = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), filepath.Join(dir, scaffold.StarterData)) {
		t.Fatalf("stdout = %q", stdout.String())
	}

	out := filepath.Join(dir, "index.html")
	code := run(context.Background(), []string{
		"portfolio-gen",
		"--data", filepath.Join(dir, scaffold.StarterData),
		"--template", filepath.Join(dir, scaffold.StarterTemplate),
		"--output", out,
	}, env)
	if code != ExitSuccess {
		t.Fatalf("generate from starter exit code = %d, stderr = %q", code, stderr.String())
	}

	env, _, stderr = testEnv(nil)
	if code := run(context.Background(), []string{"portfolio-gen", "init", "--dir", dir}, env); code != ExitIO {
		t.Fatalf("second init exit code = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(stderr.String(), "--force") {
		t.Fatalf("stderr should suggest --force: %q", stderr.String())
	}
}

func TestRunInitInteractive(t *testing.T) {
	dir := t.TempDir()
	env, _, stderr := testEnv(nil)
	env.Prompter = func() scaffold.PromptDriver {
		return fakePrompter{answers: map[string]string{"Site title": "Grace Hopper"}}
	}

	code := run(context.Background(), []string{"portfolio-gen", "init", "--dir", dir, "--interactive"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}

	raw, err := os.ReadFile(filepath.Join(dir, scaffold.StarterData))
	if err != nil {
		t.Fatalf("read data: %v", err)
	}
	if !strings.Contains(string(raw), "Grace Hopper") {
		t.Fatalf("prompted title missing from data file:\n%s", raw)
	}
}
