package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_DefaultsWhenNoFile(t *testing.T) {
	loader := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "missing.yaml"))

	result, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "defaults", result.Path)
	assert.Equal(t, 16000, result.Config.Audio.SampleRate)
	assert.Equal(t, 1000, result.Config.VAD.AmplitudeThreshold)
	assert.Equal(t, 1500*time.Millisecond, result.Config.VAD.SilenceTimeout())
	assert.Equal(t, "de", result.Config.ASR.Language)
	assert.Equal(t, "de-DE-KatjaNeural", result.Config.TTS.Voice)
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
vad:
  amplitude_threshold: 800
  silence_timeout_ms: 2000
llm:
  model: gpt-4o
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	result, err := NewLoader().WithDotEnv(false).WithPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, path, result.Path)
	assert.Equal(t, 800, result.Config.VAD.AmplitudeThreshold)
	assert.Equal(t, 2*time.Second, result.Config.VAD.SilenceTimeout())
	assert.Equal(t, "gpt-4o", result.Config.LLM.Model)
	// untouched sections keep their defaults
	assert.Equal(t, 16000, result.Config.Audio.SampleRate)
}

func TestLoader_InvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vad: [broken"), 0o644))

	_, err := NewLoader().WithDotEnv(false).WithPath(path).Load()
	assert.Error(t, err)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("TASKPILOT_ASR_API_KEY", "asr-key")
	t.Setenv("OPENAI_API_KEY", "shared-key")

	result, err := NewLoader().WithDotEnv(false).WithPath(filepath.Join(t.TempDir(), "none.yaml")).Load()
	require.NoError(t, err)

	assert.Equal(t, "asr-key", result.Config.ASR.APIKey)
	assert.Equal(t, "shared-key", result.Config.LLM.APIKey)
}
