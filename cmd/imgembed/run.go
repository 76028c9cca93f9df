package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	imgembed "github.com/alnah/go-imgembed"
	"github.com/alnah/go-imgembed/internal/config"
	"github.com/alnah/go-imgembed/internal/fileutil"
	"github.com/alnah/go-imgembed/internal/hints"
	"github.com/alnah/go-imgembed/internal/resolve"
)

// Sentinel errors for CLI operations.
var (
	ErrReadInput          = errors.New("failed to read input file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputConflict     = errors.New("--output must be a directory when processing multiple inputs")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// outputSuffix replaces the input extension on generated files.
const outputSuffix = ".inlined.html"

// inputExtensions are the file types discovered inside input directories.
var inputExtensions = []string{".html", ".htm", ".md", ".markdown"}

// run is the top-level command logic, separated from main for testability.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, inputs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.version {
		fmt.Fprintln(stdout, "imgembed "+Version)
		return nil
	}
	if flags.initConfig != "" {
		return config.WriteDefault(flags.initConfig)
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, flags.workers)
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}

	svc, err := buildService(flags, cfg, stderr)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if len(inputs) == 0 && cfg.Input.DefaultDir != "" {
		inputs = []string{cfg.Input.DefaultDir}
	}
	if len(inputs) == 0 {
		return runStdin(ctx, svc, flags, stdin, stdout, stderr)
	}

	files, err := discoverFiles(inputs)
	if err != nil {
		return err
	}
	return runBatch(ctx, svc, flags, cfg, files, stderr)
}

// loadConfig loads the named config, or defaults when none is given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nil))
		}
		return nil, err
	}
	return cfg, nil
}

// buildService merges config and flags (flags win) into a Service.
func buildService(flags *cliFlags, cfg *config.Config, stderr io.Writer) (*imgembed.Service, error) {
	maxBytes := cfg.Fetch.MaxBytes
	if flags.maxBytes != 0 {
		maxBytes = flags.maxBytes
	}
	if maxBytes == 0 {
		maxBytes = imgembed.DefaultMaxBytes
	}

	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}
	if flags.timeout != 0 {
		timeout = flags.timeout
	}
	if timeout == 0 {
		timeout = imgembed.DefaultTimeout
	}

	maxRedirects := cfg.Fetch.MaxRedirects
	if flags.maxRedirects != 0 {
		maxRedirects = flags.maxRedirects
	}
	if maxRedirects == 0 {
		maxRedirects = imgembed.DefaultMaxRedirects
	}

	userAgent := cfg.Fetch.UserAgent
	if flags.userAgent != "" {
		userAgent = flags.userAgent
	}
	if userAgent == "" {
		userAgent = resolve.DefaultUserAgent
	}

	opts := []imgembed.Option{
		imgembed.WithMaxBytes(maxBytes),
		imgembed.WithTimeout(timeout),
		imgembed.WithMaxRedirects(maxRedirects),
		imgembed.WithUserAgent(userAgent),
	}
	if !flags.quiet {
		opts = append(opts, imgembed.WithLogWriter(stderr))
	}
	return imgembed.New(opts...), nil
}

// runStdin inlines one document from stdin to stdout (or --output).
func runStdin(ctx context.Context, svc *imgembed.Service, flags *cliFlags, stdin io.Reader, stdout, stderr io.Writer) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	baseDir := flags.baseDir
	if baseDir == "" {
		baseDir = "."
	}

	result, err := svc.Inline(ctx, imgembed.Input{
		Document: string(data),
		BaseDir:  baseDir,
		Markdown: flags.markdown,
	})
	if err != nil {
		return decorateInlineError(err, baseDir)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(result.HTML), filePermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	} else if _, err := io.WriteString(stdout, result.HTML); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	printSummary(stderr, flags, "stdin", baseDir, result)
	return nil
}

// runBatch inlines the discovered files in parallel with bounded workers.
func runBatch(ctx context.Context, svc *imgembed.Service, flags *cliFlags, cfg *config.Config, files []string, stderr io.Writer) error {
	if len(files) > 1 && flags.output != "" && !isDirectory(flags.output) {
		return ErrOutputConflict
	}

	var mu sync.Mutex // serializes summary lines
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveWorkerCount(flags.workers))

	for _, file := range files {
		file := file
		g.Go(func() error {
			result, outPath, err := processFile(ctx, svc, flags, cfg, file)
			if err != nil {
				return err
			}
			mu.Lock()
			printSummary(stderr, flags, file, baseDirFor(flags, file), result)
			if flags.verbose {
				fmt.Fprintf(stderr, "%s -> %s\n", file, outPath)
			}
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// processFile inlines a single file and writes the result.
func processFile(ctx context.Context, svc *imgembed.Service, flags *cliFlags, cfg *config.Config, path string) (*imgembed.Result, string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}

	baseDir := baseDirFor(flags, path)

	result, err := svc.Inline(ctx, imgembed.Input{
		Document: string(data),
		BaseDir:  baseDir,
		Markdown: flags.markdown || cfg.Input.Markdown || fileutil.IsMarkdownPath(path),
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, decorateInlineError(err, baseDir))
	}

	outPath := outputPathFor(path, flags.output, cfg)
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, "", fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	}
	if err := os.WriteFile(outPath, []byte(result.HTML), filePermissions); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, outPath, err, hints.ForOutputDirectory())
	}
	return result, outPath, nil
}

// baseDirFor picks the resolution root for one input: the explicit
// --base-dir if given, otherwise the input's own directory.
func baseDirFor(flags *cliFlags, path string) string {
	if flags.baseDir != "" {
		return flags.baseDir
	}
	return filepath.Dir(path)
}

// discoverFiles expands directories into their processable files and keeps
// explicit file arguments as-is.
func discoverFiles(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}

		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, input, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if hasInputExtension(entry.Name()) {
				files = append(files, filepath.Join(input, entry.Name()))
			}
		}
	}
	return files, nil
}

// hasInputExtension reports whether name carries a processable extension.
func hasInputExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range inputExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// outputPathFor derives where the inlined document is written.
// Priority: explicit --output file (single input), --output directory,
// config output.defaultDir, then alongside the input.
func outputPathFor(inputPath, outputFlag string, cfg *config.Config) string {
	name := outputName(inputPath)

	switch {
	case outputFlag != "" && isDirectory(outputFlag):
		return filepath.Join(outputFlag, name)
	case outputFlag != "":
		return outputFlag
	case cfg.Output.DefaultDir != "":
		return filepath.Join(cfg.Output.DefaultDir, name)
	default:
		return filepath.Join(filepath.Dir(inputPath), name)
	}
}

// outputName swaps the input extension for the output suffix.
func outputName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

// isDirectory returns true if path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// decorateInlineError appends actionable hints to document-level failures.
func decorateInlineError(err error, baseDir string) error {
	switch {
	case errors.Is(err, imgembed.ErrInvalidBaseDir):
		if baseDir == "" {
			baseDir = "."
		}
		return fmt.Errorf("%w%s", err, hints.ForMissingImage(baseDir))
	default:
		return err
	}
}

// printSummary emits the per-document counters unless quieted.
func printSummary(stderr io.Writer, flags *cliFlags, label, baseDir string, result *imgembed.Result) {
	if flags.quiet {
		return
	}
	fmt.Fprintf(stderr, "%s: inlined %d src reference(s), rewrote %d srcset attribute(s)\n",
		label, result.Stats.ImagesInlined, result.Stats.SrcsetAttrsTouched)

	var sawTimeout, sawTooLarge, sawMissing bool
	for _, w := range result.Warnings {
		sawTimeout = sawTimeout || strings.Contains(w, "timed out")
		sawTooLarge = sawTooLarge || strings.Contains(w, "size limit")
		sawMissing = sawMissing || strings.Contains(w, "file not found")
	}
	if sawTimeout {
		fmt.Fprintln(stderr, strings.TrimPrefix(hints.ForTimeout(), "\n"))
	}
	if sawTooLarge {
		fmt.Fprintln(stderr, strings.TrimPrefix(hints.ForTooLarge(), "\n"))
	}
	if sawMissing {
		fmt.Fprintln(stderr, strings.TrimPrefix(hints.ForMissingImage(baseDir), "\n"))
	}
}
