package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"

// InitEnvironmentVariables loads envFile when it exists. Production reads the real environment only.
func InitEnvironmentVariables(envFile string) error {
	if os.Getenv("GO_ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	if envFile == "" {
		envFile = DEV_ENV_FILENAME
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Debugf("no %s file found, using process environment", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(key string) (string, error) {
	value, found := os.LookupEnv(key)
	if !found || value == "" {
		return "", fmt.Errorf("GetEnv: %s not set", key)
	}

	return value, nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	value, err := GetEnv(key)
	if err != nil {
		return defaultValue
	}

	return value
}
