// Package file loads faqctl configuration from a TOML file, with
// environment variables taking precedence over file values.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/skolica-digital/faqctl/internal/core/domain"
)

// Environment variables that override file values.
const (
	EnvProjectID  = "SANITY_PROJECT_ID"
	EnvDataset    = "SANITY_DATASET"
	EnvToken      = "SANITY_API_TOKEN"
	EnvAPIVersion = "SANITY_API_VERSION"
)

// DefaultAPIVersion is used when neither the file nor the environment
// names one.
const DefaultAPIVersion = "2024-01-01"

// Config holds the credentials and coordinates for the content store.
type Config struct {
	ProjectID  string `toml:"project_id"`
	Dataset    string `toml:"dataset"`
	Token      string `toml:"token"`
	APIVersion string `toml:"api_version"`
}

// Validate reports every required key that is still missing.
func (c Config) Validate() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "project_id ("+EnvProjectID+")")
	}
	if c.Dataset == "" {
		missing = append(missing, "dataset ("+EnvDataset+")")
	}
	if c.Token == "" {
		missing = append(missing, "token ("+EnvToken+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Load reads the config file under configDir and applies environment
// overrides. If configDir is empty, defaults to ~/.faqctl. A missing
// file is not an error; the environment may carry everything.
func Load(configDir string) (Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		configDir = filepath.Join(home, ".faqctl")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, err
	}

	var cfg Config
	path := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	return cfg, nil
}

// Save writes the config back to disk with restricted permissions.
func Save(configDir string, cfg Config) error {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configDir = filepath.Join(home, ".faqctl")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, "config.toml"), data, 0600)
}

// applyEnv overlays environment variables onto cfg. The environment
// wins so CI and one-off runs need no file at all.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProjectID); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv(EnvDataset); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvAPIVersion); v != "" {
		cfg.APIVersion = v
	}
}
