package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"triptacticx/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate направляет секреты во временную директорию, чтобы тест не читал /run/secrets,
// и снимает переменные окружения, влияющие на конфигурацию.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	for _, name := range []string{
		"EMAIL_ADDRESS", "EMAIL_PASSWORD", "AI_API_KEY", "DB_PASSWORD", "REDIS_PASSWORD",
		"DB_HOST", "AI_CLIENT_TYPE", "SERVER_PORT", "CORS_ALLOWED_ORIGINS",
	} {
		unsetEnv(t, name)
	}
	return dir
}

// unsetEnv удаляет переменную; t.Setenv восстановит исходное значение после теста.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("AI_CLIENT_TYPE", "stub")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.True(t, cfg.SMTPSSL)
	assert.Equal(t, 120*time.Second, cfg.AITimeout)
	assert.Equal(t, uint(10), cfg.RateLimitPerMinute)
	assert.False(t, cfg.ArchiveEnabled())
	assert.False(t, cfg.SMTP().HasCredentials())
	assert.Equal(t, []string{"*"}, cfg.GetAllowedOrigins())
}

func TestLoadConfig_SecretsFromFilesAndEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_password"), []byte("app-password\n"), 0o600))
	t.Setenv("EMAIL_ADDRESS", "planner@example.com")
	t.Setenv("AI_API_KEY", "sk-test")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	smtp := cfg.SMTP()
	assert.Equal(t, "planner@example.com", smtp.Username)
	assert.Equal(t, "app-password", smtp.Password)
	assert.True(t, smtp.HasCredentials())
	assert.Equal(t, "sk-test", cfg.AIAPIKey)
	assert.Equal(t, config.AIClientOpenAI, cfg.AIClientType)
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	isolate(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=8089\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"), 0o600))
	t.Setenv("AI_CLIENT_TYPE", "ollama")

	cfg, err := config.LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "8089", cfg.ServerPort)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.GetAllowedOrigins())
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("openai без ключа", func(t *testing.T) {
		isolate(t)
		t.Setenv("AI_CLIENT_TYPE", "openai")
		_, err := config.LoadConfig("")
		assert.ErrorContains(t, err, "AI_API_KEY")
	})

	t.Run("неизвестный клиент", func(t *testing.T) {
		isolate(t)
		t.Setenv("AI_CLIENT_TYPE", "gemini")
		_, err := config.LoadConfig("")
		assert.ErrorContains(t, err, "AI_CLIENT_TYPE")
	})
}

func TestMaskedDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser: "trip", DBPassword: "hunter2", DBHost: "db", DBPort: "5432", DBName: "plans", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://trip:hunter2@db:5432/plans?sslmode=disable", cfg.GetDSN())
	assert.NotContains(t, cfg.MaskedDSN(), "hunter2")
	assert.Contains(t, cfg.MaskedDSN(), "********@db:5432")
}
