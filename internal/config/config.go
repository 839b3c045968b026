// Package config loads the toolkit's credentials file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the config file
type Config struct {
	LGTM   LGTM   `yaml:"lgtm"`
	GitHub GitHub `yaml:"github"`
}

// LGTM holds a pre-obtained lgtm.com browser session. All four values are
// lifted from a logged-in browser; the toolkit cannot obtain them itself.
type LGTM struct {
	Nonce        string `yaml:"nonce"`
	LongSession  string `yaml:"long_session"`
	ShortSession string `yaml:"short_session"`
	APIVersion   string `yaml:"api_version"`
}

// GitHub holds the optional access token used by the commands that walk
// GitHub
type GitHub struct {
	Token string `yaml:"token"`
}

// Load reads and validates the config file at path
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"lgtm.nonce", c.LGTM.Nonce},
		{"lgtm.long_session", c.LGTM.LongSession},
		{"lgtm.short_session", c.LGTM.ShortSession},
		{"lgtm.api_version", c.LGTM.APIVersion},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("missing required key %s", field.key)
		}
	}
	return nil
}

// GitHubToken resolves the GitHub access token. The GITHUB_TOKEN
// environment variable wins over the file.
func (c *Config) GitHubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return c.GitHub.Token
}
