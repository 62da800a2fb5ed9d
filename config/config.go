package config

import (
	"time"

	"finqa/types"

	"github.com/caarlos0/env/v10"
)

// Config holds every tunable of the service. Values come from the environment,
// optionally seeded from a .env file by the caller.
type Config struct {
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8501"`
	MaxUploadMB int    `env:"MAX_UPLOAD_MB" envDefault:"20"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SessionTTL  int    `env:"SESSION_TTL_MINUTES" envDefault:"120"`

	OllamaURL       string `env:"OLLAMA_URL" envDefault:"http://127.0.0.1:11434/api/generate"`
	Model           string `env:"LLM_MODEL" envDefault:"tinyllama"`
	MaxContextChars int    `env:"MAX_CONTEXT_CHARS" envDefault:"1000"`
	TimeoutSeconds  int    `env:"GENERATION_TIMEOUT_SECONDS" envDefault:"60"`
	NumCtx          int    `env:"NUM_CTX" envDefault:"512"`
	PreviewChars    int    `env:"PREVIEW_CHARS" envDefault:"1000"`
	LogPromptTokens bool   `env:"LOG_PROMPT_TOKENS" envDefault:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Timeout is the generation wait budget.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionIdle is how long an untouched session is kept.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// LLM is the generation client view of the configuration.
func (c *Config) LLM() types.LLMConfig {
	return types.LLMConfig{
		Url:     c.OllamaURL,
		Model:   c.Model,
		NumCtx:  c.NumCtx,
		Timeout: c.Timeout(),
	}
}

func (c *Config) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}
