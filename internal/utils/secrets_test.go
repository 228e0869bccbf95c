package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"triptacticx/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSecretFrom(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_password"), []byte("  s3cret \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("\n"), 0o600))

	secret, err := utils.ReadSecretFrom(dir, "email_password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)

	_, err = utils.ReadSecretFrom(dir, "empty")
	assert.ErrorContains(t, err, "is empty")

	_, err = utils.ReadSecretFrom(dir, "missing")
	assert.Error(t, err)
}

func TestSecretOrEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "email_address"), []byte("file@example.com"), 0o600))

	t.Setenv("EMAIL_ADDRESS", "env@example.com")
	t.Setenv("EMAIL_PASSWORD", "from-env")

	assert.Equal(t, "file@example.com", utils.SecretOrEnv(dir, "email_address", "EMAIL_ADDRESS"), "файл секрета приоритетнее env")
	assert.Equal(t, "from-env", utils.SecretOrEnv(dir, "email_password", "EMAIL_PASSWORD"))
	assert.Equal(t, "", utils.SecretOrEnv(dir, "nothing", "TRIPTACTICX_UNSET_VAR"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "[НЕ ЗАДАН]", utils.MaskSecret(""))
	assert.Equal(t, "[ЗАГРУЖЕН]", utils.MaskSecret("x"))
}
