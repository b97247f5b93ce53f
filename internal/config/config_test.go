package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"AI_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"GEMINI_API_KEY", "GEMINI_MODEL", "CLAUDE_API_KEY", "CLAUDE_MODEL",
	"OLLAMA_HOST", "OLLAMA_MODEL", "OPENROUTER_API_KEY", "OPENROUTER_MODEL",
	"OPENROUTER_BASE_URL", "PORT", "MAX_FILE_SIZE", "REQUEST_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "QUIZSMITH_AUDIT_DB",
}

// isolate clears every bound variable and points the user config dir at
// an empty temp dir.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.LLM.Claude.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Ollama.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxFileSize)
	assert.Equal(t, 2*time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.AuditDB)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-ant-test")
	t.Setenv("CLAUDE_MODEL", "claude-3-5-haiku-20241022")
	t.Setenv("PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("QUIZSMITH_AUDIT_DB", "/tmp/audit.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.Claude.APIKey)
	assert.Equal(t, "claude-3-5-haiku-20241022", cfg.LLM.Claude.Model)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/tmp/audit.db", cfg.AuditDB)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "quizsmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: gemini
gemini:
  api_key: file-key
  model: gemini-2.0-flash
server:
  port: 7000
log:
  format: json
`), 0o644))
	t.Setenv("GEMINI_MODEL", "gemini-1.5-flash")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "file-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidServerSettings(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "0")
	_, err := Load("")
	assert.Error(t, err)
}
