package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// Options configures the output device and the per-track pipeline.
type Options struct {
	SampleRate      int           // speaker sample rate in Hz
	Buffer          time.Duration // speaker buffer length
	ResampleQuality int           // beep resampler quality (1-64)
	Volume          float64       // 0.0 to 1.0
}

// Player plays one file at a time through the shared speaker.
type Player struct {
	opts   Options
	logger *zap.Logger

	state    State
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	done     chan struct{}
	finish   func()
}

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

var errInvalidOptions = errors.New("invalid audio options")

// Open acquires the output device and returns a player bound to it.
// The speaker is initialized once per process; later calls reuse it.
func Open(opts Options, logger *zap.Logger) (*Player, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SampleRate <= 0 || opts.Buffer <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d, buffer %s", errInvalidOptions, opts.SampleRate, opts.Buffer)
	}

	speakerMu.Lock()
	defer speakerMu.Unlock()

	if !speakerInitialized {
		sr := beep.SampleRate(opts.SampleRate)
		if err := speaker.Init(sr, sr.N(opts.Buffer)); err != nil {
			return nil, err
		}
		speakerInitialized = true
		speakerSampleRate = sr
		logger.Debug("speaker initialized",
			zap.Int("sample_rate", opts.SampleRate),
			zap.Duration("buffer", opts.Buffer))
	}

	// An already running speaker keeps the rate it was opened with
	opts.SampleRate = int(speakerSampleRate)
	return newPlayer(opts, logger), nil
}

func newPlayer(opts Options, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	close(done)
	return &Player{
		opts:   opts,
		logger: logger,
		state:  Stopped,
		done:   done,
		finish: func() {},
	}
}

// State returns the current playback state.
func (p *Player) State() State { return p.state }

// Done returns a channel closed when the current track ends or is stopped.
// With nothing loaded the returned channel is already closed.
func (p *Player) Done() <-chan struct{} { return p.done }

// Err returns the error the decoder reported while streaming, if any.
func (p *Player) Err() error {
	if p.streamer == nil {
		return nil
	}
	return p.streamer.Err()
}

// Close stops playback and releases the output device.
func (p *Player) Close() {
	p.Stop()

	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		speaker.Close()
		speakerInitialized = false
	}
}
