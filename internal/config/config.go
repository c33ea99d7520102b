package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AudioConfig holds output audio settings. Synthesis always runs at
// 44100 Hz; a different output_sample_rate converts the encoded result.
// volume scales samples before quantization, 0.0 (silent) to 1.0 (full).
type AudioConfig struct {
	OutputSampleRate int     `toml:"output_sample_rate"`
	Volume           float64 `toml:"volume"`
}

// PlaybackConfig holds speaker playback settings.
type PlaybackConfig struct {
	Backend string `toml:"backend"` // "beep" or "portaudio"
	Enabled bool   `toml:"enabled"`
}

// OutputConfig holds file output settings.
type OutputConfig struct {
	Dir string `toml:"dir"` // default directory for saved WAV files
}

// Config is the top-level configuration.
type Config struct {
	Theme    string         `toml:"theme"`
	Audio    AudioConfig    `toml:"audio"`
	Playback PlaybackConfig `toml:"playback"`
	Output   OutputConfig   `toml:"output"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme: "synthwave",
		Audio: AudioConfig{
			OutputSampleRate: 44100,
			Volume:           1.0,
		},
		Playback: PlaybackConfig{
			Backend: "beep",
			Enabled: true,
		},
		Output: OutputConfig{
			Dir: "",
		},
	}
}

// DefaultPath returns the default config file path (~/.config/dtmf/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dtmf", "config.toml")
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place so a crash mid-write cannot
// corrupt the existing config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".dtmf-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
