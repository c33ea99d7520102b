package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.Theme != "synthwave" {
		t.Errorf("expected theme synthwave, got %s", cfg.Theme)
	}
	if cfg.Audio.OutputSampleRate != 44100 {
		t.Errorf("expected output sample rate 44100, got %d", cfg.Audio.OutputSampleRate)
	}
	if cfg.Audio.Volume != 1.0 {
		t.Errorf("expected volume 1.0, got %v", cfg.Audio.Volume)
	}
	if cfg.Playback.Backend != "beep" {
		t.Errorf("expected backend beep, got %s", cfg.Playback.Backend)
	}
	if !cfg.Playback.Enabled {
		t.Error("expected playback enabled by default")
	}
	if cfg.Output.Dir != "" {
		t.Errorf("expected empty output dir, got %s", cfg.Output.Dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Audio.OutputSampleRate != 44100 {
		t.Errorf("expected default sample rate, got %d", cfg.Audio.OutputSampleRate)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
theme = "monochrome"

[audio]
output_sample_rate = 8000
volume = 0.5

[playback]
backend = "portaudio"
enabled = false

[output]
dir = "/tmp/tones"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Theme != "monochrome" {
		t.Errorf("expected monochrome, got %s", cfg.Theme)
	}
	if cfg.Audio.OutputSampleRate != 8000 {
		t.Errorf("expected 8000, got %d", cfg.Audio.OutputSampleRate)
	}
	if cfg.Audio.Volume != 0.5 {
		t.Errorf("expected volume 0.5, got %v", cfg.Audio.Volume)
	}
	if cfg.Playback.Backend != "portaudio" {
		t.Errorf("expected portaudio, got %s", cfg.Playback.Backend)
	}
	if cfg.Playback.Enabled {
		t.Error("expected playback disabled")
	}
	if cfg.Output.Dir != "/tmp/tones" {
		t.Errorf("expected /tmp/tones, got %s", cfg.Output.Dir)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[playback]
backend = "portaudio"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Playback.Backend != "portaudio" {
		t.Errorf("expected portaudio, got %s", cfg.Playback.Backend)
	}
	// Non-overridden values should remain defaults
	if cfg.Audio.OutputSampleRate != 44100 {
		t.Errorf("expected default sample rate 44100, got %d", cfg.Audio.OutputSampleRate)
	}
	if cfg.Theme != "synthwave" {
		t.Errorf("expected default theme, got %s", cfg.Theme)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Theme = "gruvbox"
	cfg.Audio.OutputSampleRate = 22050

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}

	if loaded.Theme != "gruvbox" {
		t.Errorf("expected theme gruvbox, got %s", loaded.Theme)
	}
	if loaded.Audio.OutputSampleRate != 22050 {
		t.Errorf("expected 22050, got %d", loaded.Audio.OutputSampleRate)
	}
	if loaded.Playback.Backend != "beep" {
		t.Errorf("expected default backend preserved, got %s", loaded.Playback.Backend)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "config.toml")

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed to create nested dirs: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %s: %v", path, err)
	}
}
