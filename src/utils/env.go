package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// EnvFile returns the .env file for goEnv inside envDir.
func EnvFile(envDir string, goEnv string) string {
	if goEnv == "production" {
		return filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	return filepath.Join(envDir, DEV_ENV_FILENAME)
}

func InitEnvironmentVariables(envDir string, goEnv string) error {
	// production injects its environment directly
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := EnvFile(envDir, goEnv)
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %w", envFile, err)
	}

	return nil
}
