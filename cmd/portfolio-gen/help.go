package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage prints the main usage message followed by the flags of fs.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: portfolio-gen [flags]")
	fmt.Fprintln(w, "       portfolio-gen init [flags]")
	fmt.Fprintln(w, "       portfolio-gen serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a portfolio HTML page from a JSON data file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  (none)     Render the template and write the output file")
	fmt.Fprintln(w, "  init       Write a starter data file and template")
	fmt.Fprintln(w, "  serve      Preview the page over HTTP, re-rendering on every request")
	fmt.Fprintln(w)
	printFlags(w, fs)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s, %s, %s override the flag defaults.\n", envData, envTemplate, envOutput)
}

func printFlags(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
