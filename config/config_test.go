package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:11434/api/generate", cfg.OllamaURL)
	assert.Equal(t, "tinyllama", cfg.Model)
	assert.Equal(t, 1000, cfg.MaxContextChars)
	assert.Equal(t, 512, cfg.NumCtx)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LLM_MODEL", "qwen:0.5b")
	t.Setenv("MAX_CONTEXT_CHARS", "250")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "5")
	t.Setenv("MAX_UPLOAD_MB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "qwen:0.5b", cfg.Model)
	assert.Equal(t, 250, cfg.MaxContextChars)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 2*1024*1024, cfg.BodyLimit())
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("NUM_CTX", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_LLM(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://ollama:11434/api/generate")
	t.Setenv("NUM_CTX", "1024")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg, err := Load()
	require.NoError(t, err)

	llm := cfg.LLM()
	assert.Equal(t, "http://ollama:11434/api/generate", llm.Url)
	assert.Equal(t, "tinyllama", llm.Model)
	assert.Equal(t, 1024, llm.NumCtx)
	assert.Equal(t, 60*time.Second, llm.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle())
}
