package config

import (
	"time"
)

type Config struct {
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
	Web   WebConfig   `yaml:"web" mapstructure:"web"`
	Audio AudioConfig `yaml:"audio" mapstructure:"audio"`
	VAD   VADConfig   `yaml:"vad" mapstructure:"vad"`
	ASR   ASRConfig   `yaml:"asr" mapstructure:"asr"`
	LLM   LLMConfig   `yaml:"llm" mapstructure:"llm"`
	TTS   TTSConfig   `yaml:"tts" mapstructure:"tts"`
}

type LogConfig struct {
	Level string `yaml:"log_level" mapstructure:"log_level"`
	Dir   string `yaml:"log_dir" mapstructure:"log_dir"`
	File  string `yaml:"log_file" mapstructure:"log_file"`
}

// WebConfig configures the local control API the mobile UI talks to.
type WebConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Port    int  `yaml:"port" mapstructure:"port"`
}

// AudioConfig describes the capture format. The pipeline records
// 16-bit mono PCM; sample_rate and frames_per_block drive both the
// capture stream and the container header.
type AudioConfig struct {
	SampleRate     int    `yaml:"sample_rate" mapstructure:"sample_rate"`
	FramesPerBlock int    `yaml:"frames_per_block" mapstructure:"frames_per_block"`
	SaveUserAudio  bool   `yaml:"save_user_audio" mapstructure:"save_user_audio"`
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`
}

type VADConfig struct {
	AmplitudeThreshold int `yaml:"amplitude_threshold" mapstructure:"amplitude_threshold"`
	SilenceTimeoutMs   int `yaml:"silence_timeout_ms" mapstructure:"silence_timeout_ms"`
	MaxUtteranceSec    int `yaml:"max_utterance_sec" mapstructure:"max_utterance_sec"`
}

func (c VADConfig) SilenceTimeout() time.Duration {
	return time.Duration(c.SilenceTimeoutMs) * time.Millisecond
}

func (c VADConfig) MaxUtterance() time.Duration {
	return time.Duration(c.MaxUtteranceSec) * time.Second
}

type ASRConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"url" mapstructure:"url"`
	Model    string `yaml:"model" mapstructure:"model"`
	Language string `yaml:"language" mapstructure:"language"`
}

type LLMConfig struct {
	APIKey      string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string  `yaml:"url" mapstructure:"url"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	Prompt      string  `yaml:"prompt" mapstructure:"prompt"`
	MaxHistory  int     `yaml:"max_history" mapstructure:"max_history"`
}

type TTSConfig struct {
	Voice  string `yaml:"voice" mapstructure:"voice"`
	Format string `yaml:"format" mapstructure:"format"`
}
