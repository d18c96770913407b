package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:3001", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "com.luminar.app", cfg.TokenService)
	assert.Equal(t, "authToken", cfg.TokenAccount)
}

func TestConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LUMINAR_API_URL", "https://api.example.com")
	t.Setenv("LUMINAR_API_TIMEOUT", "5s")
	t.Setenv("LUMINAR_DB", "/tmp/luminar-test.db")
	t.Setenv("LUMINAR_JOURNAL_KEEP", "20")
	t.Setenv("LUMINAR_LOG_FORMAT", "json")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/luminar-test.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.JournalKeep)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnvReportsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LUMINAR_API_TIMEOUT", "thirty")
	t.Setenv("LUMINAR_JOURNAL_KEEP", "many")

	cfg, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LUMINAR_API_TIMEOUT")
	assert.Contains(t, err.Error(), "LUMINAR_JOURNAL_KEEP")
	assert.Equal(t, 30*time.Second, cfg.API.Timeout, "defaults kept for bad values")
}

func TestDotEnvFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LUMINAR_QUESTIONS_FILE=custom.yaml\n"), 0o600))
	t.Setenv("LUMINAR_QUESTIONS_FILE", "")
	os.Unsetenv("LUMINAR_QUESTIONS_FILE")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", cfg.QuestionsFile)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Level = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.TokenAccount = ""
	assert.Error(t, cfg.Validate())
}
