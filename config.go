package pitchprofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvCacheDir    = "PITCHPROFILE_CACHE_DIR"
	EnvFormat      = "PITCHPROFILE_FORMAT"
	EnvStrict      = "PITCHPROFILE_STRICT"
	EnvProfileList = "PITCHPROFILE_PROFILE_LIST"
	EnvGitHubToken = "GITHUB_TOKEN"
)

var validOutputFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration with precedence: ENV > File > Defaults.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("strict config parse error: %w", err)
		}
	}

	applyDefaults(&config)
	if err := applyEnv(&config); err != nil {
		return nil, err
	}

	if !validOutputFormats[config.OutputFormat] {
		return nil, fmt.Errorf("unsupported output_format %q (supported: text, json, yaml)", config.OutputFormat)
	}
	if config.AuditConcurrency < 1 {
		return nil, fmt.Errorf("audit_concurrency must be at least 1, got %d", config.AuditConcurrency)
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.CacheDir == "" {
		config.CacheDir = ".cache"
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "text"
	}
	if config.AuditConcurrency == 0 {
		config.AuditConcurrency = 4
	}
	if config.AuditTimeout == 0 {
		config.AuditTimeout = 10 * time.Second
	}
}

func applyEnv(config *Config) error {
	if v := os.Getenv(EnvCacheDir); v != "" {
		config.CacheDir = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		config.OutputFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvProfileList); v != "" {
		config.ProfileListURL = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		config.Strict = strict
	}
	config.GitHubToken = os.Getenv(EnvGitHubToken)
	return nil
}
