package playlist

import "math/rand/v2"

// Playlist holds the ordered list of pending track paths.
// Duplicates are kept and play independently.
type Playlist struct {
	tracks []string
}

// NewPlaylist creates a playlist holding the given paths in order.
func NewPlaylist(paths ...string) *Playlist {
	p := &Playlist{
		tracks: make([]string, 0, len(paths)),
	}
	p.Add(paths...)
	return p
}

// Add appends paths to the playlist.
func (p *Playlist) Add(paths ...string) {
	p.tracks = append(p.tracks, paths...)
}

// Remove removes the track at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.tracks) {
		return false
	}
	p.tracks = append(p.tracks[:index], p.tracks[index+1:]...)
	return true
}

// RemoveFirst removes the first occurrence of path.
// Later duplicates stay in place. Returns false if path is absent.
func (p *Playlist) RemoveFirst(path string) bool {
	for i, t := range p.tracks {
		if t == path {
			return p.Remove(i)
		}
	}
	return false
}

// Select picks the next track: a uniformly random one when shuffle is set,
// the first one otherwise. A nil rng uses the global source.
// Returns "" for an empty playlist; callers check IsEmpty first.
func (p *Playlist) Select(shuffle bool, rng *rand.Rand) string {
	if len(p.tracks) == 0 {
		return ""
	}
	if !shuffle {
		return p.tracks[0]
	}
	if rng == nil {
		return p.tracks[rand.IntN(len(p.tracks))] //nolint:gosec // track order is not security sensitive
	}
	return p.tracks[rng.IntN(len(p.tracks))]
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []string {
	result := make([]string, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at the given index, or "" if out of bounds.
func (p *Playlist) Track(index int) string {
	if index < 0 || index >= len(p.tracks) {
		return ""
	}
	return p.tracks[index]
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsEmpty returns true if no tracks are pending.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}
