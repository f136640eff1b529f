package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are attempted in order; the first one present is loaded.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads environment variables from the first .env file found.
// Existing process environment variables are not overwritten; a missing
// file is not an error.
func loadEnvFiles() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("Loaded environment variables", "path", path)
		return nil
	}
	return nil
}
