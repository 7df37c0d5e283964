// Package controller runs the playlist: pick a track, play it to the end,
// drop it unless repeating, stop when nothing is left.
package controller

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/llehouerou/tinyplay/internal/errmsg"
	"github.com/llehouerou/tinyplay/internal/player"
	"github.com/llehouerou/tinyplay/internal/playlist"
)

const (
	nowPlayingFormat = "Now playing: %s\n"
	playlistOverLine = "Our playlist is now over!"
)

// Options selects the traversal policy.
type Options struct {
	Shuffle bool
	Repeat  bool
	Quiet   bool
}

// TrackError reports a fatal failure on a selected track.
type TrackError struct {
	Op   errmsg.Op
	Path string
	Err  error
}

func (e *TrackError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *TrackError) Unwrap() error { return e.Err }

// Controller drives a player through a playlist.
type Controller struct {
	player player.Interface
	out    io.Writer
	logger *zap.Logger
	rng    *rand.Rand
}

// New creates a controller writing status lines to out.
// A nil rng uses the global random source.
func New(p player.Interface, out io.Writer, logger *zap.Logger, rng *rand.Rand) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{player: p, out: out, logger: logger, rng: rng}
}

// Run plays tracks until the playlist is empty. With Repeat set nothing is
// ever removed, so Run only returns on error or when ctx is cancelled.
// Any open or decode failure ends the run with a *TrackError.
func (c *Controller) Run(ctx context.Context, tracks *playlist.Playlist, opts Options) error {
	c.logger.Debug("playlist ready",
		zap.Int("tracks", tracks.Len()),
		zap.Bool("shuffle", opts.Shuffle),
		zap.Bool("repeat", opts.Repeat))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if tracks.IsEmpty() {
			c.status(opts, playlistOverLine+"\n")
			return nil
		}

		path := tracks.Select(opts.Shuffle, c.rng)
		if err := c.player.Play(path); err != nil {
			return &TrackError{Op: errmsg.OpPlaybackStart, Path: path, Err: err}
		}
		c.status(opts, fmt.Sprintf(nowPlayingFormat, path))

		select {
		case <-c.player.Done():
		case <-ctx.Done():
			c.player.Stop()
			return ctx.Err()
		}

		if err := c.player.Err(); err != nil {
			return &TrackError{Op: errmsg.OpPlayback, Path: path, Err: err}
		}

		if !opts.Repeat {
			tracks.RemoveFirst(path)
		}
		c.logger.Debug("track finished", zap.String("path", path), zap.Int("remaining", tracks.Len()))
	}
}

func (c *Controller) status(opts Options, line string) {
	if opts.Quiet {
		return
	}
	if _, err := io.WriteString(c.out, line); err != nil {
		c.logger.Warn("write status line", zap.Error(err))
	}
}
