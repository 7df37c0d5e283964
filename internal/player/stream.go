package player

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// Play starts playback of the given audio file and returns once the track is
// queued on the speaker. Wait on Done for completion.
func (p *Player) Play(path string) error {
	p.Stop()

	streamer, format, size, err := decodeFile(path)
	if err != nil {
		return err
	}

	p.streamer = streamer
	p.format = format

	// Resample if the track's sample rate differs from the speaker's
	var playStreamer beep.Streamer = streamer
	target := beep.SampleRate(p.opts.SampleRate)
	if format.SampleRate != target {
		playStreamer = beep.Resample(p.opts.ResampleQuality, format.SampleRate, target, streamer)
	}
	p.volume = &effects.Volume{
		Streamer: playStreamer,
		Base:     2,
		Volume:   levelToVolume(p.opts.Volume),
		Silent:   p.opts.Volume <= 0,
	}

	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Int("channels", format.NumChannels),
		zap.Duration("duration", format.SampleRate.D(streamer.Len())),
	}
	if size >= 0 {
		fields = append(fields, zap.String("size", humanize.IBytes(uint64(size)))) //nolint:gosec // checked non-negative
	}
	p.logger.Debug("track decoded", fields...)

	done := make(chan struct{})
	p.done = done
	p.finish = sync.OnceFunc(func() { close(done) })
	p.state = Playing

	speaker.Play(beep.Seq(p.volume, beep.Callback(p.finish)))

	return nil
}
