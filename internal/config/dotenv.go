package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const dotEnvFileName = ".env"

// loadDotEnv reads the KEY=VALUE pairs of path into the process environment.
// Variables already present in the environment are left untouched. A
// missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error reading env file %s: %w", path, err)
	}

	return nil
}

// dotEnvPath picks the .env location: the explicit path if set, otherwise
// <baseDir>/.env, where baseDir falls back to the working directory.
func dotEnvPath(explicit, baseDir string) string {
	if explicit != "" {
		return explicit
	}
	if baseDir == "" {
		baseDir = workingDir()
	}
	return filepath.Join(baseDir, dotEnvFileName)
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
