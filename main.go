package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/llehouerou/tinyplay/internal/config"
	"github.com/llehouerou/tinyplay/internal/controller"
	"github.com/llehouerou/tinyplay/internal/errmsg"
	"github.com/llehouerou/tinyplay/internal/logging"
	"github.com/llehouerou/tinyplay/internal/player"
	"github.com/llehouerou/tinyplay/internal/playlist"
	"github.com/llehouerou/tinyplay/internal/stderr"
)

var version = "dev"

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := config.NewFlagSet("tinyplay")
	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		// pflag has already printed usage (and the error, if any)
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintf(stdout, "tinyplay %s\n", version)
		return exitOK
	}

	cfg, err := config.Load(fs)
	if err != nil {
		if errors.Is(err, config.ErrNoTarget) || errors.Is(err, config.ErrExtraTarget) {
			fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
			fs.Usage()
			return exitUsage
		}
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return exitFatal
	}

	// Capture ALSA noise before the speaker starts
	if err := stderr.Start(); err == nil {
		defer stderr.Stop()
	}

	logger := logging.New(stderr.Original(), cfg.Verbose)
	defer func() { _ = logger.Sync() }()
	go forwardStderr(logger)

	tracks, err := playlist.FromPath(cfg.Target)
	if err != nil {
		return fatal(logger, errmsg.Format(errmsg.OpEnumerate, err))
	}

	p, err := player.Open(player.Options{
		SampleRate:      cfg.Audio.SampleRate,
		Buffer:          cfg.Audio.Buffer(),
		ResampleQuality: cfg.Audio.ResampleQuality,
		Volume:          cfg.Audio.Volume,
	}, logger)
	if err != nil {
		return fatal(logger, errmsg.Format(errmsg.OpOutputOpen, err))
	}
	defer p.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := controller.New(p, stdout, logger, nil)
	err = ctrl.Run(ctx, tracks, controller.Options{
		Shuffle: cfg.Shuffle,
		Repeat:  cfg.Repeat,
		Quiet:   cfg.Quiet,
	})
	if err == nil || errors.Is(err, context.Canceled) {
		return exitOK
	}

	var te *controller.TrackError
	if errors.As(err, &te) {
		return fatal(logger, errmsg.FormatWith(te.Op, te.Path, te.Err))
	}
	return fatal(logger, errmsg.Format(errmsg.OpPlayback, err))
}

func fatal(logger *zap.Logger, msg string) int {
	logger.Debug("fatal", zap.String("message", msg))
	stderr.WriteOriginal(msg + "\n")
	return exitFatal
}

func forwardStderr(logger *zap.Logger) {
	for line := range stderr.Messages() {
		logger.Debug("audio backend", zap.String("line", line))
	}
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "A tiny command-line audio player\n\n")
	fmt.Fprintf(w, "Usage: tinyplay [OPTIONS] <FILENAME>\n\n")
	fmt.Fprintf(w, "Arguments:\n  <FILENAME>  audio file or directory (%s)\n\n", formatExtensions())
	fmt.Fprintf(w, "Options:\n%s", fs.FlagUsages())
}

func formatExtensions() string {
	exts := player.Extensions()
	for i, ext := range exts {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	return strings.Join(exts, ", ")
}
