package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "EVENTLY_"

// dotEnvFile is loaded before the environment is read. Variables already set
// in the process environment win over the file.
var dotEnvFile = ".env"

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	lookup(&cfg.APIURL, "API_URL")
	lookup(&cfg.DBPath, "DB_PATH")
	lookup(&cfg.LogLevel, "LOG_LEVEL")
	lookup(&cfg.Locale, "LOCALE")
	lookup(&cfg.ImageBucket, "IMAGE_BUCKET")
	lookup(&cfg.ImageRegion, "IMAGE_REGION")
	lookup(&cfg.ImageEndpoint, "IMAGE_ENDPOINT")
	lookup(&cfg.ImageBaseURL, "IMAGE_BASE_URL")
	lookup(&cfg.ImageAccessKey, "IMAGE_ACCESS_KEY")
	lookup(&cfg.ImageSecretKey, "IMAGE_SECRET_KEY")

	if v, ok := os.LookupEnv(envPrefix + "REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

func lookup(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
		*dst = v
	}
}
