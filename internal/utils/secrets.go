package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir - стандартный путь Docker Secrets.
const DefaultSecretsDir = "/run/secrets"

// ReadSecret читает секрет из файла в стандартном пути Docker Secrets.
func ReadSecret(secretName string) (string, error) {
	return ReadSecretFrom(DefaultSecretsDir, secretName)
}

// ReadSecretFrom читает секрет из файла <dir>/<secretName>.
func ReadSecretFrom(dir, secretName string) (string, error) {
	filePath := filepath.Join(dir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// SecretOrEnv сначала пробует файл секрета, затем переменную окружения envName.
// Пустая строка без ошибки означает, что секрет не задан.
func SecretOrEnv(dir, secretName, envName string) string {
	if secret, err := ReadSecretFrom(dir, secretName); err == nil {
		return secret
	}
	return strings.TrimSpace(os.Getenv(envName))
}

// MaskSecret скрывает значение секрета для логов.
func MaskSecret(secret string) string {
	if secret == "" {
		return "[НЕ ЗАДАН]"
	}
	return "[ЗАГРУЖЕН]"
}
