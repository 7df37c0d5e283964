// internal/player/interface.go
package player

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Stop()
	State() State
	Done() <-chan struct{}
	Err() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
