package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/evently/internal/flagx"
	"github.com/dmitrijs2005/evently/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Empty fields leave
// the current value alone.
type FileConfig struct {
	APIURL         string          `json:"api_url" yaml:"api_url"`
	DBPath         string          `json:"db_path" yaml:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	Locale         string          `json:"locale" yaml:"locale"`
	ImageBucket    string          `json:"image_bucket" yaml:"image_bucket"`
	ImageRegion    string          `json:"image_region" yaml:"image_region"`
	ImageEndpoint  string          `json:"image_endpoint" yaml:"image_endpoint"`
	ImageBaseURL   string          `json:"image_base_url" yaml:"image_base_url"`
}

// parseFile overlays cfg with the file named by -c/-config, if any. The format
// follows the extension: .json, .yaml or .yml.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, fc.APIURL)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.Locale, fc.Locale)
	setString(&cfg.ImageBucket, fc.ImageBucket)
	setString(&cfg.ImageRegion, fc.ImageRegion)
	setString(&cfg.ImageEndpoint, fc.ImageEndpoint)
	setString(&cfg.ImageBaseURL, fc.ImageBaseURL)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
