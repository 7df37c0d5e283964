package playlist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/llehouerou/tinyplay/internal/player"
)

// Enumerate lists the playable files for path.
//
// For a directory: every direct child with a playable extension, in
// directory-listing order (sorted by name). Subdirectories are neither
// returned nor descended into. Child paths keep path as given, so "./music/"
// yields "./music/a.mp3".
// For anything else: the path itself if its extension qualifies. A path that
// does not exist is treated as a file; opening it fails later at playback.
func Enumerate(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		if player.IsMusicFile(path) {
			return []string{path}, nil
		}
		return nil, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}

	var tracks []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		child := joinChild(path, e.Name())
		if player.IsMusicFile(child) {
			tracks = append(tracks, child)
		}
	}
	return tracks, nil
}

// joinChild appends name to dir without cleaning dir.
func joinChild(dir, name string) string {
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// FromPath builds a playlist from the playable files under path.
func FromPath(path string) (*Playlist, error) {
	tracks, err := Enumerate(path)
	if err != nil {
		return nil, err
	}
	return NewPlaylist(tracks...), nil
}
