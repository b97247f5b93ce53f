// Package config loads quizsmith settings from an optional .env file, an
// optional YAML config file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/quizsmith/quizsmith/internal/llm"
)

// Config is the resolved application configuration.
type Config struct {
	LLM     llm.Config
	Server  ServerConfig
	Log     LogConfig
	AuditDB string
}

type ServerConfig struct {
	Port           int
	MaxFileSize    int64
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// binding ties a config key to the environment variable that overrides it.
type binding struct {
	key string
	env string
	def any
}

func bindings() []binding {
	d := llm.DefaultConfig()
	return []binding{
		{"provider", "AI_PROVIDER", d.Provider},
		{"openai.api_key", "OPENAI_API_KEY", ""},
		{"openai.model", "OPENAI_MODEL", d.OpenAI.Model},
		{"openai.base_url", "OPENAI_BASE_URL", ""},
		{"gemini.api_key", "GEMINI_API_KEY", ""},
		{"gemini.model", "GEMINI_MODEL", d.Gemini.Model},
		{"claude.api_key", "CLAUDE_API_KEY", ""},
		{"claude.model", "CLAUDE_MODEL", d.Claude.Model},
		{"ollama.host", "OLLAMA_HOST", d.Ollama.Host},
		{"ollama.model", "OLLAMA_MODEL", d.Ollama.Model},
		{"openrouter.api_key", "OPENROUTER_API_KEY", ""},
		{"openrouter.model", "OPENROUTER_MODEL", d.OpenRouter.Model},
		{"openrouter.base_url", "OPENROUTER_BASE_URL", d.OpenRouter.BaseURL},
		{"server.port", "PORT", 5000},
		{"server.max_file_size", "MAX_FILE_SIZE", int64(10 << 20)},
		{"server.request_timeout", "REQUEST_TIMEOUT", 2 * time.Minute},
		{"log.level", "LOG_LEVEL", "info"},
		{"log.format", "LOG_FORMAT", "console"},
		{"audit_db", "QUIZSMITH_AUDIT_DB", ""},
	}
}

// Load resolves configuration. configFile may be empty, in which case
// quizsmith.yaml is looked up in the working directory and the user
// config directory; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	for _, b := range bindings() {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("quizsmith")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "quizsmith"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		LLM: llm.Config{
			Provider: v.GetString("provider"),
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("openai.api_key"),
				Model:   v.GetString("openai.model"),
				BaseURL: v.GetString("openai.base_url"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("gemini.api_key"),
				Model:  v.GetString("gemini.model"),
			},
			Claude: llm.ClaudeConfig{
				APIKey: v.GetString("claude.api_key"),
				Model:  v.GetString("claude.model"),
			},
			Ollama: llm.OllamaConfig{
				Host:  v.GetString("ollama.host"),
				Model: v.GetString("ollama.model"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("openrouter.api_key"),
				Model:   v.GetString("openrouter.model"),
				BaseURL: v.GetString("openrouter.base_url"),
			},
		},
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			MaxFileSize:    v.GetInt64("server.max_file_size"),
			RequestTimeout: v.GetDuration("server.request_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		AuditDB: v.GetString("audit_db"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Server.MaxFileSize)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.Server.RequestTimeout)
	}
	return nil
}
