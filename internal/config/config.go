// Package config loads and persists the layered jirax configuration:
// built-in defaults, then ~/.jirax/config.toml, then ./config.toml,
// then environment variables (a .env file is honored first).
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"jirax/internal/jira"
)

// LocalPath is the project-local config file, which shadows the global
// one when present.
const LocalPath = "config.toml"

// Config mirrors the config.toml schema.
type Config struct {
	Jira       JiraConfig       `toml:"jira"`
	Extraction ExtractionConfig `toml:"extraction"`
	Display    DisplayConfig    `toml:"display"`
}

// JiraConfig holds connection and credential settings.
type JiraConfig struct {
	Server         string `toml:"server"`
	Token          string `toml:"token"`
	Email          string `toml:"email"`
	AuthType       string `toml:"auth_type"`
	Login          string `toml:"login"`
	VerifySSL      bool   `toml:"verify_ssl"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ExtractionConfig holds the extraction defaults.
type ExtractionConfig struct {
	DefaultProject  string `toml:"default_project"`
	MaxResults      int    `toml:"max_results"`
	OutputDirectory string `toml:"output_directory"`
}

// DisplayConfig controls the pre-export preview.
type DisplayConfig struct {
	Preview     bool `toml:"preview"`
	PreviewRows int  `toml:"preview_rows"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Jira: JiraConfig{
			AuthType:       string(jira.AuthBasic),
			VerifySSL:      true,
			TimeoutSeconds: 30,
		},
		Extraction: ExtractionConfig{
			MaxResults:      1000,
			OutputDirectory: "./exports",
		},
		Display: DisplayConfig{
			Preview:     true,
			PreviewRows: 5,
		},
	}
}

// GlobalPath returns the per-user config file location.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jirax", "config.toml"), nil
}

// Load resolves the effective configuration. When explicitPath is set,
// only that file is layered over the defaults; otherwise the local
// config wins over the global one. A broken optional config file is a
// warning, not a failure, matching the rest of the degradation policy.
func Load(explicitPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if explicitPath != "" {
		if _, err := toml.DecodeFile(explicitPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", explicitPath, err)
		}
		cfg.applyEnv()
		return cfg, nil
	}

	if _, err := os.Stat(LocalPath); err == nil {
		if _, err := toml.DecodeFile(LocalPath, cfg); err != nil {
			log.Warn().Err(err).Str("path", LocalPath).Msg("Ignoring broken local config file")
		}
	} else if globalPath, pathErr := GlobalPath(); pathErr == nil {
		if _, statErr := os.Stat(globalPath); statErr == nil {
			if _, err := toml.DecodeFile(globalPath, cfg); err != nil {
				log.Warn().Err(err).Str("path", globalPath).Msg("Ignoring broken user config file")
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes cfg as TOML to path with owner-only permissions, creating
// the parent directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// The file carries a credential, keep it private to the owner.
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClientConfig converts the TOML settings into the Jira client config.
func (c *JiraConfig) ClientConfig() jira.Config {
	return jira.Config{
		BaseURL:   c.Server,
		Token:     c.Token,
		Email:     c.Email,
		AuthType:  jira.AuthType(c.AuthType),
		Login:     c.Login,
		VerifySSL: c.VerifySSL,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

func (c *Config) applyEnv() {
	c.Jira.Server = getEnv("JIRAX_SERVER", c.Jira.Server)
	c.Jira.Token = getEnv("JIRAX_TOKEN", c.Jira.Token)
	c.Jira.Email = getEnv("JIRAX_EMAIL", c.Jira.Email)
	c.Jira.AuthType = getEnv("JIRAX_AUTH_TYPE", c.Jira.AuthType)
	c.Jira.Login = getEnv("JIRAX_LOGIN", c.Jira.Login)
	if timeout, err := strconv.Atoi(os.Getenv("JIRAX_TIMEOUT_SECONDS")); err == nil && timeout > 0 {
		c.Jira.TimeoutSeconds = timeout
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
