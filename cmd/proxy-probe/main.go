package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-coders/proxy-probe/internal/probe"
	"github.com/go-coders/proxy-probe/pkg/audio"
	"github.com/go-coders/proxy-probe/pkg/config"
	"github.com/go-coders/proxy-probe/pkg/logger"
	"github.com/go-coders/proxy-probe/pkg/util"
)

// Version will be set by GoReleaser
var Version = "dev"

const synthDigits = 6

func loadAudio(cfg *config.Config) (*audio.Source, error) {
	if cfg.TextOnly {
		return nil, nil
	}
	if cfg.SynthAudio {
		return audio.Synthesize(synthDigits, "en")
	}
	return audio.FromFile(cfg.AudioPath)
}

// run returns the process exit code: 1 for configuration problems, which are
// caught before any request is sent, and 0 otherwise. Transport and payload
// errors are reported but do not change the exit code.
func run(args []string, stdout io.Writer) int {
	printer := util.NewPrinter(stdout)

	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(stdout)
		return 0
	}
	if err != nil {
		printer.PrintError(fmt.Sprintf("Error: %v", err))
		config.Usage(stdout)
		return 1
	}
	logger.Init(cfg.Debug, os.Stderr)

	// Show version if requested
	if cfg.Version {
		printer.Printf("proxy-probe %s\n", Version)
		return 0
	}

	if err := cfg.Validate(); err != nil {
		printer.PrintError(fmt.Sprintf("Error: %v", err))
		return 1
	}

	clip, err := loadAudio(cfg)
	if err != nil {
		printer.PrintError(fmt.Sprintf("Error: %v", err))
		if errors.Is(err, audio.ErrNotFound) {
			printer.PrintHint("Provide a recording with -audio, or use -synth-audio / -text-only.")
		}
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("model=%s text_only=%t key=%s", cfg.Model, cfg.TextOnly, cfg.MaskedKey())
	runner := probe.NewRunner(cfg, probe.WithAudio(clip), probe.WithPrinter(printer))

	outcome := <-runner.Start(ctx)
	if outcome.Err != nil {
		probe.ReportError(printer, outcome.Err)
		var configErr *probe.ConfigError
		if errors.As(outcome.Err, &configErr) {
			return 1
		}
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}
