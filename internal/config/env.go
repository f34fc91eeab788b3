package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/autosite/internal/foundation/errors"
)

// envFiles are loaded in order when present. godotenv never overrides
// variables that are already set in the process environment.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				Fatal().WithContext("path", envPath).Build()
		}
		slog.Debug("Loaded environment variables", "path", envPath)
	}
	return nil
}
