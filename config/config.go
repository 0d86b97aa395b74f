package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// AudioConfig describes the input device used by the recorder worker.
// A nil DeviceID means the system default input.
type AudioConfig struct {
	DeviceID   *int   `toml:"device_id"`
	DeviceName string `toml:"device_name"`
	Channels   int    `toml:"channels"`
	SampleRate int    `toml:"sample_rate"`
}

type Config struct {
	APIKey        string      `toml:"api_key"`
	TranscriptDir string      `toml:"transcript_dir"`
	Audio         AudioConfig `toml:"audio"`
}

func defaults() *Config {
	return &Config{
		TranscriptDir: defaultTranscriptDir(),
		Audio: AudioConfig{
			DeviceName: "System Default",
			Channels:   1,
			SampleRate: 44100,
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	if path := configFilePath(); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		cfg.TranscriptDir = expandTilde(cfg.TranscriptDir)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Ensure the transcript directory exists
	if err := os.MkdirAll(cfg.TranscriptDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration back to the config file, creating the
// config directory if needed. Used by the settings commands.
func (c *Config) Save() error {
	dir := configDir()
	if dir == "" {
		return fmt.Errorf("could not determine config directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

func (c *Config) validate() error {
	if c.Audio.Channels < 1 {
		return fmt.Errorf("audio.channels must be >= 1, got %d", c.Audio.Channels)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be > 0, got %d", c.Audio.SampleRate)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MEETING_RECORDER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MEETING_RECORDER_TRANSCRIPT_DIR"); v != "" {
		cfg.TranscriptDir = expandTilde(v)
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meeting-recorder")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "meeting-recorder")
	}
	return ""
}

func configFilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultTranscriptDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Documents", "Transcriptions")
	}
	return filepath.Join(".", "Transcriptions")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
