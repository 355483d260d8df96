package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emurenMRz/list-unsubscribe/internal/browser"
	"github.com/emurenMRz/list-unsubscribe/internal/config"
	"github.com/emurenMRz/list-unsubscribe/internal/logger"
	"github.com/emurenMRz/list-unsubscribe/internal/unsubscribe"
)

// Exit codes. The values above 2 follow sysexits.h.
const (
	ExitOK          = 0
	ExitNotFound    = 1 // List-Unsubscribe header not found
	ExitNoURL       = 2 // List-Unsubscribe header found, but no URL found
	ExitUsage       = 64
	ExitUnavailable = 69
	ExitIOErr       = 74
)

// Program wires the command line to the extractor.
type Program struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Lookup reads environment variables; nil means os.LookupEnv.
	Lookup config.Lookup

	// OpenURL replaces the browser launcher when set.
	OpenURL func(url string) error
}

type options struct {
	browser    bool
	printValue bool
	mailto     bool
	verbose    bool
	file       string
}

func (p *Program) parseArgs(args []string) (*options, error) {
	opts := &options{file: "-"}

	fs := flag.NewFlagSet("list-unsubscribe", flag.ContinueOnError)
	fs.SetOutput(p.Stderr)
	fs.BoolVar(&opts.browser, "b", false, "Open URL in browser if possible")
	fs.BoolVar(&opts.browser, "browser", false, "Open URL in browser if possible")
	fs.BoolVar(&opts.printValue, "p", false, "Print raw header field value")
	fs.BoolVar(&opts.printValue, "print-value", false, "Print raw header field value")
	fs.BoolVar(&opts.mailto, "mailto", false, "Accept mailto: entries as URLs")
	fs.BoolVar(&opts.verbose, "v", false, "Log debug output to stderr")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log debug output to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: list-unsubscribe [flags] [file]\n\nFile to process, or stdin if omitted or \"-\".\n\n")
		fs.PrintDefaults()
	}

	// flags may follow the file name
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	switch len(positional) {
	case 0:
	case 1:
		opts.file = positional[0]
	default:
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %q", positional[1:])
	}
	return opts, nil
}

// Run executes the program and returns its exit code.
func (p *Program) Run(args []string) int {
	opts, err := p.parseArgs(args)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(p.Stderr, err)
		return ExitUsage
	}

	cfg, err := config.Load(p.Lookup)
	if err != nil {
		fmt.Fprintln(p.Stderr, err)
		return ExitUsage
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	log := logger.New(p.Stderr, level)
	defer log.Sync()

	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	if cfg.EnvFile != "" {
		log.Debug("loaded env file", zap.String("path", cfg.EnvFile))
	}

	extractor := &unsubscribe.Extractor{
		AcceptMailto: opts.mailto || cfg.AcceptMailto,
		Stdin:        p.Stdin,
		Logger:       log,
	}

	result, err := extractor.ReadFile(opts.file)
	if err != nil {
		log.Error("cannot read message", zap.String("file", opts.file), zap.Error(err))
		return ExitIOErr
	}
	log.Debug("extracted", zap.Stringer("status", result.Status), zap.String("url", result.URL))

	switch {
	case result.Status == unsubscribe.StatusAbsent:
		return ExitNotFound
	case opts.printValue:
		fmt.Fprintln(p.Stdout, result.Raw)
		return ExitOK
	case result.Status == unsubscribe.StatusNoURL:
		return ExitNoURL
	}

	if !opts.browser {
		fmt.Fprintln(p.Stdout, result.URL)
		return ExitOK
	}

	opener := &browser.Opener{
		Command: cfg.BrowserCommand,
		Output:  p.Stderr,
		Logger:  log,
	}
	open := opener.Open
	if p.OpenURL != nil {
		open = p.OpenURL
	}
	if err := open(result.URL); err != nil {
		log.Error("cannot open browser", zap.String("url", result.URL), zap.Error(err))
		return ExitUnavailable
	}
	return ExitOK
}
