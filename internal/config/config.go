package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envOnce sync.Once
	// Logger reports .env loading, before the configured logger exists.
	Logger = logrus.New()
)

// envCandidates lists where a .env file is looked up, first hit wins.
var envCandidates = []string{".env", filepath.Join("..", ".env")}

// LoadEnv loads FINTRACK_* variables from a .env file in the current or
// parent directory, if one exists. Variables already set are kept. Only the
// first call has an effect.
func LoadEnv() {
	envOnce.Do(func() {
		loadEnvFile()
	})
}

// loadEnvFile returns the path that was loaded, or "" when none was.
func loadEnvFile() string {
	for _, candidate := range envCandidates {
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			Logger.WithError(err).Warnf("Could not load %s", candidate)
			return ""
		}
		Logger.Debugf("Loaded environment variables from %s", candidate)
		return candidate
	}
	Logger.Debug("No .env file found, using the process environment")
	return ""
}
