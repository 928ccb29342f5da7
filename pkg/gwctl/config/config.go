package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	VersionV1 = "v1"
)

type Config struct {
	Version        string    `yaml:"version"`
	CurrentProfile string    `yaml:"current-profile,omitempty"`
	Profiles       []Profile `yaml:"profiles,omitempty"`
	Settings       Settings  `yaml:"settings,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`
	Debug        bool   `yaml:"debug,omitempty"`
}

// Profile holds the connection settings for one gateway application. The
// client secret can be stored inline, read from an environment variable or
// file, or kept in the OS keychain.
type Profile struct {
	Name             string `yaml:"name"`
	BaseURL          string `yaml:"base-url,omitempty"`
	TokenURL         string `yaml:"token-url,omitempty"`
	ClientID         string `yaml:"client-id"`
	ClientSecret     string `yaml:"client-secret,omitempty"`
	ClientSecretEnv  string `yaml:"client-secret-env,omitempty"`
	ClientSecretFile string `yaml:"client-secret-file,omitempty"`
	UseKeychain      bool   `yaml:"use-keychain,omitempty"`
	// SenderAddress is the default SMS sender for this application.
	SenderAddress string `yaml:"sender-address,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		Settings: Settings{
			OutputFormat: "table",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) FindProfile(name string) (*Profile, error) {
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile not found: %s", name)
}

func (c *Config) CurrentProfileOrDefault() string {
	if c.CurrentProfile != "" {
		return c.CurrentProfile
	}
	if len(c.Profiles) > 0 {
		return c.Profiles[0].Name
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config version missing")
	}
	for _, profile := range c.Profiles {
		if strings.TrimSpace(profile.Name) == "" {
			return errors.New("profile name cannot be empty")
		}
		if strings.TrimSpace(profile.ClientID) == "" {
			return fmt.Errorf("profile %s client-id is required", profile.Name)
		}
	}
	return nil
}

// ResolveSecret returns the client secret for a profile, trying inline
// config, then environment, then file, then the OS keychain.
func ResolveSecret(profile *Profile) (string, error) {
	if profile == nil {
		return "", errors.New("profile is nil")
	}
	if profile.ClientSecret != "" {
		return profile.ClientSecret, nil
	}
	if profile.ClientSecretEnv != "" {
		if secret := os.Getenv(profile.ClientSecretEnv); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("environment variable %s is empty", profile.ClientSecretEnv)
	}
	if profile.ClientSecretFile != "" {
		content, err := os.ReadFile(profile.ClientSecretFile)
		if err != nil {
			return "", fmt.Errorf("failed to read client secret file: %w", err)
		}
		secret := strings.TrimSpace(string(content))
		if secret == "" {
			return "", fmt.Errorf("client secret file %s is empty", profile.ClientSecretFile)
		}
		return secret, nil
	}
	if profile.UseKeychain {
		return KeychainSecret(profile.ClientID)
	}
	return "", fmt.Errorf("no client secret configured for profile %s", profile.Name)
}
