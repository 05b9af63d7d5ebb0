package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	TTS    TTSConfig
	Tips   TipsConfig
	Audio  AudioConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LLMConfig struct {
	OpenAIKey       string
	AnthropicKey    string
	DefaultProvider string
	DefaultModel    string
	MaxTokens       int
	Temperature     float64
}

type TTSConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "tts-1"
	Voice   string // default: "alloy"
}

type TipsConfig struct {
	AgeGateEnabled           bool
	LanguageDetectionEnabled bool
}

type AudioConfig struct {
	Dir           string        // where generated audio files land
	PublicPath    string        // URL prefix clients use to fetch them
	Retention     time.Duration // 0 = keep forever
	SweepSchedule string        // cron spec for the retention sweep
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 1337)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxTokens, err := getEnvInt("LLM_MAX_TOKENS", 1024)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
	}

	temperature, err := getEnvFloat("LLM_TEMPERATURE", 0.7)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}

	retention, err := getEnvDuration("AUDIO_RETENTION", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIO_RETENTION: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		LLM: LLMConfig{
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider: getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:    getEnv("LLM_DEFAULT_MODEL", "gpt-4o"),
			MaxTokens:       maxTokens,
			Temperature:     temperature,
		},
		TTS: TTSConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("TTS_OPENAI_BASE_URL", ""),
			Model:   getEnv("TTS_OPENAI_MODEL", "tts-1"),
			Voice:   getEnv("TTS_VOICE", "alloy"),
		},
		Tips: TipsConfig{
			AgeGateEnabled:           getEnvBool("AGE_GATE_ENABLED", true),
			LanguageDetectionEnabled: getEnvBool("LANGUAGE_DETECTION_ENABLED", true),
		},
		Audio: AudioConfig{
			Dir:           getEnv("AUDIO_DIR", "public"),
			PublicPath:    getEnv("AUDIO_PUBLIC_PATH", "/audio"),
			Retention:     retention,
			SweepSchedule: getEnv("AUDIO_SWEEP_SCHEDULE", "0 * * * *"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.LLM.OpenAIKey == "" && c.LLM.AnthropicKey == "" {
		missing = append(missing, "OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}
	if c.TTS.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY (tts)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
