package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emurenMRz/list-unsubscribe/internal/config"
	"github.com/emurenMRz/list-unsubscribe/internal/logger"
	"github.com/emurenMRz/list-unsubscribe/internal/mailbox"
	"github.com/emurenMRz/list-unsubscribe/internal/unsubscribe"
)

const exitIOErr = 74 // EX_IOERR

func main() {
	var (
		mailto  = flag.Bool("mailto", false, "Accept mailto: entries as URLs")
		all     = flag.Bool("all", false, "Also list messages without a URL")
		verbose = flag.Bool("v", false, "Log debug output to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] mbox-or-dir...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(64) // EX_USAGE
	}

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(64)
	}
	level := cfg.LogLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	log := logger.New(os.Stderr, level)
	defer log.Sync()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := &mailbox.Scanner{
		Extractor: &unsubscribe.Extractor{AcceptMailto: *mailto || cfg.AcceptMailto, Logger: log},
		Logger:    log,
	}
	write := func(e mailbox.Entry) error {
		column := e.Result.URL
		if e.Result.Status != unsubscribe.StatusFound {
			if !*all {
				return nil
			}
			column = e.Result.Status.String()
		}
		_, err := fmt.Fprintf(out, "%s\t%d\t%s\n", e.Mailbox, e.Index, column)
		return err
	}

	code := 0
	for _, arg := range flag.Args() {
		paths, err := mailbox.Paths(arg)
		if err != nil {
			log.Error("cannot open mailbox", zap.String("path", arg), zap.Error(err))
			code = exitIOErr
			continue
		}
		for _, path := range paths {
			if err := scanner.ScanFile(path, write); err != nil {
				log.Error("cannot scan mailbox", zap.String("path", path), zap.Error(err))
				code = exitIOErr
			}
		}
	}

	if code != 0 {
		out.Flush()
		log.Sync()
		os.Exit(code)
	}
}
