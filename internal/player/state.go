// internal/player/state.go
package player

// State represents the playback state.
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲            stop            │
//	     └────────────────────────────┘
//
// A finished track stays Playing until the next Play or Stop releases it;
// Done reports completion.
type State int

const (
	Stopped State = iota
	Playing
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded.
func (s State) IsActive() bool {
	return s == Playing
}
