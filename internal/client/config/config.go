package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Evently CLI.
//
// Fields:
//   - APIURL: scheme://host[:port] of the backend; "/api" is appended by the client.
//   - DBPath: SQLite file backing the persistent client store.
//   - RequestTimeout: deadline applied to every backend request.
//   - LogLevel: debug, info, warn or error.
//   - Locale: BCP 47 tag used to collate service names.
//   - Image*: optional S3-compatible bucket for uploaded service images. The
//     access keys are read from the environment only.
type Config struct {
	APIURL         string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
	Locale         string

	ImageBucket   string
	ImageRegion   string
	ImageEndpoint string
	ImageBaseURL  string

	ImageAccessKey string
	ImageSecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000"
	c.DBPath = "evently.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.Locale = "en"
	c.ImageRegion = "us-east-1"
}

// ImagesEnabled reports whether uploads go to a bucket rather than inline
// data URLs.
func (c *Config) ImagesEnabled() bool {
	return c.ImageBucket != ""
}

// Load builds a Config from args (without the program name). Later sources
// take precedence: defaults, config file, environment, flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
