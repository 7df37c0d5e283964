package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	appName       = "tinyplay"
	localFileName = "tinyplay.toml"
)

// Config holds the playback arguments for one run.
type Config struct {
	Target  string `koanf:"-"`       // file or directory to play
	Shuffle bool   `koanf:"shuffle"` // pick a random pending track each time
	Repeat  bool   `koanf:"repeat"`  // never remove played tracks
	Quiet   bool   `koanf:"quiet"`   // suppress status lines
	Verbose bool   `koanf:"verbose"` // debug logging on stderr

	Audio AudioConfig `koanf:"audio"`
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate      int     `koanf:"sample_rate"`      // speaker rate in Hz (default: 44100)
	BufferMS        int     `koanf:"buffer_ms"`        // speaker buffer in milliseconds (default: 100)
	ResampleQuality int     `koanf:"resample_quality"` // 1-64 (default: 4)
	Volume          float64 `koanf:"volume"`           // 0.0-1.0 (default: 1.0)
}

var (
	ErrNoTarget    = errors.New("missing filename argument")
	ErrExtraTarget = errors.New("expected exactly one filename argument")
)

// NewFlagSet declares the command-line flags. Flag names double as
// config keys so explicitly set flags override file values.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.BoolP("shuffle", "s", false, "play tracks in random order")
	fs.BoolP("repeat", "r", false, "keep played tracks in the playlist (loop until killed)")
	fs.BoolP("quiet", "q", false, "do not print status lines")
	fs.BoolP("verbose", "v", false, "log debug details to stderr")
	fs.StringP("config", "c", "", "path to a TOML config file")
	fs.BoolP("version", "V", false, "print version and exit")
	return fs
}

// Load builds the configuration from config files and the parsed flag set.
// Files are applied in order (last wins), then explicitly set flags.
func Load(fs *pflag.FlagSet) (*Config, error) {
	switch fs.NArg() {
	case 0:
		return nil, ErrNoTarget
	case 1:
	default:
		return nil, ErrExtraTarget
	}

	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	// An explicit config file must exist
	if explicit, _ := fs.GetString("config"); explicit != "" {
		explicit = expandPath(explicit)
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("%s: %w", explicit, err)
		}
	}

	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		Audio: AudioConfig{
			SampleRate:      44100,
			BufferMS:        100,
			ResampleQuality: 4,
			Volume:          1.0,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Target = expandPath(fs.Arg(0))

	if err := cfg.Audio.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tinyplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./tinyplay.toml (pwd, highest priority)
		localFileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func (a AudioConfig) validate() error {
	if a.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %d", a.SampleRate)
	}
	if a.BufferMS <= 0 {
		return fmt.Errorf("audio.buffer_ms must be positive, got %d", a.BufferMS)
	}
	if a.ResampleQuality < 1 || a.ResampleQuality > 64 {
		return fmt.Errorf("audio.resample_quality must be between 1 and 64, got %d", a.ResampleQuality)
	}
	if a.Volume < 0 || a.Volume > 1 {
		return fmt.Errorf("audio.volume must be between 0 and 1, got %v", a.Volume)
	}
	return nil
}

// Buffer returns the speaker buffer length.
func (a AudioConfig) Buffer() time.Duration {
	return time.Duration(a.BufferMS) * time.Millisecond
}
