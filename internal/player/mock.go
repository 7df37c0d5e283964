// internal/player/mock.go
package player

// Mock is a test double for Player. Tracks finish as soon as they start
// unless Hold is set, in which case Finish must be called.
type Mock struct {
	state     State
	playErr   error
	streamErr error
	playCalls []string
	stopCalls int
	hold      bool
	onPlay    func(path string)
	done      chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	done := make(chan struct{})
	close(done)
	return &Mock{
		state: Stopped,
		done:  done,
	}
}

func (m *Mock) Play(path string) error {
	m.playCalls = append(m.playCalls, path)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	m.done = make(chan struct{})
	if !m.hold {
		close(m.done)
	}
	if m.onPlay != nil {
		m.onPlay(path)
	}
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
	m.Finish()
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Done() <-chan struct{} { return m.done }

func (m *Mock) Err() error { return m.streamErr }

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetStreamError(err error) { m.streamErr = err }

// SetHold keeps tracks playing until Finish is called.
func (m *Mock) SetHold(hold bool) { m.hold = hold }

// OnPlay registers a hook run after each successful Play.
func (m *Mock) OnPlay(fn func(path string)) { m.onPlay = fn }

func (m *Mock) PlayCalls() []string { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

// Finish simulates the current track reaching its end.
func (m *Mock) Finish() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
