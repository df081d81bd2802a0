package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvSuperJobKey = "SJ_ID_KEY"
	EnvUserAgent   = "HH_USER_AGENT"
	EnvProxy       = "VACANCYSTATS_PROXY"
	EnvConfigFile  = "VACANCYSTATS_CONFIG"
	configFileName = "config.yaml"
	dotEnvFileName = ".env"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/vacancystats/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, configFileName)
}

// Load builds a Config from defaults, the config file and the environment.
// An empty path means VACANCYSTATS_CONFIG or the XDG default; a missing file
// at a default location is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(dotEnvFileName); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = getenv(EnvConfigFile, DefaultConfigPath())
		explicit = os.Getenv(EnvConfigFile) != ""
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = DefaultConfig()
		} else {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads a YAML config file over DefaultConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment
// without overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides credentials and connection settings from the environment.
func (c *Config) ApplyEnv() {
	c.SuperJob.APIKey = getenv(EnvSuperJobKey, c.SuperJob.APIKey)
	c.HeadHunter.UserAgent = getenv(EnvUserAgent, c.HeadHunter.UserAgent)
	c.ProxyURL = getenv(EnvProxy, c.ProxyURL)
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
