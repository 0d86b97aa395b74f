package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	appDir := filepath.Join(dir, "meeting-recorder")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MEETING_RECORDER_TRANSCRIPT_DIR", filepath.Join(t.TempDir(), "out"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "System Default", cfg.Audio.DeviceName)
	assert.Nil(t, cfg.Audio.DeviceID)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)

	// The transcript directory is created on load.
	info, err := os.Stat(cfg.TranscriptDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadFromFile(t *testing.T) {
	out := t.TempDir()
	writeConfigFile(t, `
api_key = "sk-test"
transcript_dir = "`+out+`"

[audio]
device_id = 2
device_name = "Built-in Microphone"
channels = 2
sample_rate = 48000
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, out, cfg.TranscriptDir)
	require.NotNil(t, cfg.Audio.DeviceID)
	assert.Equal(t, 2, *cfg.Audio.DeviceID)
	assert.Equal(t, "Built-in Microphone", cfg.Audio.DeviceName)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}

func TestEnvOverridesFile(t *testing.T) {
	writeConfigFile(t, `api_key = "from-file"`)
	t.Setenv("MEETING_RECORDER_API_KEY", "from-env")
	t.Setenv("MEETING_RECORDER_TRANSCRIPT_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadRejectsInvalidAudioSettings(t *testing.T) {
	writeConfigFile(t, `
[audio]
channels = 0
sample_rate = 44100
`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channels")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MEETING_RECORDER_TRANSCRIPT_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	id := 3
	cfg.APIKey = "sk-saved"
	cfg.Audio.DeviceID = &id
	cfg.Audio.DeviceName = "USB Microphone"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-saved", loaded.APIKey)
	require.NotNil(t, loaded.Audio.DeviceID)
	assert.Equal(t, 3, *loaded.Audio.DeviceID)
	assert.Equal(t, "USB Microphone", loaded.Audio.DeviceName)
}
