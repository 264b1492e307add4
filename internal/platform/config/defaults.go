package config

// DefaultConfig returns the built-in configuration used when no config
// file is present. The audio numbers are fixed by the capture pipeline:
// 16 kHz mono 16-bit PCM, 512-frame blocks (32 ms).
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			Dir:   "data/logs",
			File:  "voice.log",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8090,
		},
		Audio: AudioConfig{
			SampleRate:     16000,
			FramesPerBlock: 512,
			SaveUserAudio:  false,
			OutputDir:      "data/tmp",
		},
		VAD: VADConfig{
			AmplitudeThreshold: 1000,
			SilenceTimeoutMs:   1500,
			MaxUtteranceSec:    30,
		},
		ASR: ASRConfig{
			Model:    "whisper-1",
			Language: "de",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   500,
			Temperature: 0.7,
			MaxHistory:  20,
			Prompt: "Du bist der Assistent einer Produktivitäts-App. " +
				"Du hilfst bei Aufgaben, Terminen und Fokuszeiten. " +
				"Antworte kurz und freundlich auf Deutsch.",
		},
		TTS: TTSConfig{
			Voice:  "de-DE-KatjaNeural",
			Format: "mp3",
		},
	}
}
