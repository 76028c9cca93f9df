package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the imgembed command.
type cliFlags struct {
	config       string
	output       string
	baseDir      string
	maxBytes     int64
	timeout      time.Duration
	maxRedirects int
	userAgent    string
	markdown     bool
	workers      int
	initConfig   string
	quiet        bool
	verbose      bool
	version      bool
}

// parseFlags parses command-line arguments (without the program name) and
// returns the flags plus the positional input paths.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("imgembed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&flags.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&flags.baseDir, "base-dir", "b", "", "directory local image references resolve against")
	fs.Int64Var(&flags.maxBytes, "max-bytes", 0, "per-image byte ceiling, local and remote (0 = 10MiB)")
	fs.DurationVarP(&flags.timeout, "timeout", "t", 0, "wall-clock budget per remote fetch (0 = 30s)")
	fs.IntVar(&flags.maxRedirects, "max-redirects", 0, "redirect hop budget per remote fetch (0 = 10)")
	fs.StringVar(&flags.userAgent, "user-agent", "", "User-Agent header for remote fetches")
	fs.BoolVarP(&flags.markdown, "markdown", "m", false, "treat input as markdown, convert before inlining")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for multiple inputs (0 = auto)")
	fs.StringVar(&flags.initConfig, "init-config", "", "write a default config file at the given path and exit")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "show per-file details")
	fs.BoolVar(&flags.version, "version", false, "show version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: imgembed [flags] [input...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite image references in HTML documents as self-contained data: URIs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML or markdown files, or directories of them.")
	fmt.Fprintln(w, "           With no inputs, reads stdin and writes stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
