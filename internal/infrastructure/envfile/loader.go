// Package envfile loads KEY=VALUE files into the process environment and
// resolves the endpoint and secret snapshot used by the checks.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
)

const resultName = "env_load"

// Load reads path into the process environment. Variables that are already set win.
// A missing file is not an error; it yields a warning result.
func Load(path string) domain.CheckResult {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Warn(resultName, fmt.Sprintf("No .env file found at %s", path))
		}
		return domain.Fail(resultName, fmt.Sprintf("Cannot access %s: %v", path, err))
	}
	if info.IsDir() {
		return domain.Fail(resultName, fmt.Sprintf("%s is a directory, not an env file", path))
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("Failed to parse %s: %v", path, err))
	}
	applied := 0
	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return domain.Fail(resultName, fmt.Sprintf("Failed to export %s: %v", key, err))
		}
		applied++
	}

	return domain.Pass(resultName, fmt.Sprintf("Environment loaded from %s", path)).
		WithDetails(domain.NewDetails().
			With("variables_read", domain.Int(len(values))).
			With("variables_applied", domain.Int(applied)))
}

// Resolve snapshots the environment, applying defaults to everything except secrets.
func Resolve() domain.Environment {
	return domain.Environment{
		DBHost:            getenv(domain.EnvDBHost, domain.DefaultDBHost),
		DBPort:            getenv(domain.EnvDBPort, domain.DefaultDBPort),
		DBName:            getenv(domain.EnvDBName, domain.DefaultDBName),
		DBUser:            getenv(domain.EnvDBUser, domain.DefaultDBUser),
		DBPassword:        os.Getenv(domain.EnvDBPassword),
		DBSSLMode:         getenv(domain.EnvDBSSLMode, domain.DefaultDBSSLMode),
		N8NWebhookBaseURL: getenv(domain.EnvN8NWebhookBaseURL, domain.DefaultN8NURL),
		OpenAIAPIKey:      os.Getenv(domain.EnvOpenAIAPIKey),
		TelegramBotToken:  os.Getenv(domain.EnvTelegramBotToken),
	}
}

func getenv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
