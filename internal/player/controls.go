package player

import (
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

// Stop stops playback and releases the current track.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}

	speaker.Clear()

	// The decoder owns the file and closes it
	if p.streamer != nil {
		if err := p.streamer.Close(); err != nil {
			p.logger.Debug("close track", zap.Error(err))
		}
		p.streamer = nil
	}

	p.volume = nil
	p.state = Stopped

	// Unblock waiters; the speaker callback may already have closed it
	p.finish()
}
