package player

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3 = ".mp3"
	extWAV = ".wav"
	extOGG = ".ogg"
)

type decodeFunc func(f *os.File) (beep.StreamSeekCloser, beep.Format, error)

// decoders maps a file extension to its decoder. Matching is case-sensitive.
var decoders = map[string]decodeFunc{
	extMP3: func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return decodeMP3(f) },
	extWAV: func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) },
	extOGG: func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return vorbis.Decode(f) },
}

// IsMusicFile reports whether path has a playable extension.
// A dotfile such as ".mp3" has no extension.
func IsMusicFile(path string) bool {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		return false
	}
	_, ok := decoders[ext]
	return ok
}

// Extensions returns the playable extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// decodeFile opens path and decodes it according to its extension.
// On success the streamer owns the file: closing it closes the file.
// size is the file size in bytes, or -1 if unknown.
func decodeFile(path string) (streamer beep.StreamSeekCloser, format beep.Format, size int64, err error) {
	ext := filepath.Ext(path)
	decode, ok := decoders[ext]
	if !ok || !IsMusicFile(path) {
		return nil, beep.Format{}, -1, fmt.Errorf("unsupported format: %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, -1, err
	}

	size = -1
	if fi, statErr := f.Stat(); statErr == nil {
		size = fi.Size()
	}

	streamer, format, err = decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, -1, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return streamer, format, size, nil
}
