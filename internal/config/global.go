package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "citegraph"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Environment variables that override the file.
const (
	EnvS2APIKey       = "S2_API_KEY"
	EnvCrossrefMailto = "CROSSREF_MAILTO"
	EnvTimeout        = "CITEGRAPH_TIMEOUT"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citegraph/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load returns the effective configuration: defaults, overlaid by the config
// file if it exists, overlaid by environment variables. The result is
// validated and cached.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile(Path())
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configCache = cfg
	return cfg, nil
}

// LoadFile reads the YAML file at path over the defaults. A missing file
// (or empty path) yields the defaults, not an error. No environment
// overrides or validation are applied.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvS2APIKey); v != "" {
		c.S2APIKey = v
	}
	if v := os.Getenv(EnvCrossrefMailto); v != "" {
		c.CrossrefMailto = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// Redacted returns a copy safe to print, with the API key masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.S2APIKey != "" {
		out.S2APIKey = "********"
	}
	return &out
}

// HelpfulConfigMessage explains where the config file lives.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`Configuration is read from %s.

Example:
  mkdir -p %s
  cat > %s <<EOF
  s2_api_key: your-key
  crossref_mailto: you@example.org
  timeout: 15s
  EOF`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
