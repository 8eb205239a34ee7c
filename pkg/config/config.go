package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names for the invitation API
const (
	BackendCLI  = "cli"
	BackendREST = "rest"
)

// Selector names for the interactive menus
const (
	SelectorNumbered = "numbered"
	SelectorFzf      = "fzf"
)

// Config represents the classroom-fix configuration
type Config struct {
	GitHub   GitHubConfig  `yaml:"github"`
	Selector string        `yaml:"selector"`
	Logging  LoggingConfig `yaml:"logging"`
}

// GitHubConfig controls how GitHub and GitHub Classroom are reached
type GitHubConfig struct {
	Command string `yaml:"command"`            // shell-style gh invocation
	Backend string `yaml:"backend"`            // cli or rest
	Token   string `yaml:"token,omitempty"`    // rest backend only
	BaseURL string `yaml:"base_url,omitempty"` // GitHub Enterprise API URL, rest backend only
}

// LoggingConfig represents structured logging settings
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text or json, applies to the log file
	File       string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Command: "gh",
			Backend: BackendCLI,
		},
		Selector: SelectorNumbered,
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path.
// Fields missing from the file keep their default values.
func LoadConfigFromPath(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadEnv loads a .env file from the working directory when present
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, name := range filenames {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	return nil
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// may hold a token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".classroom-fix", "config.yaml"), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.GitHub.Backend {
	case BackendCLI, BackendREST:
	default:
		return fmt.Errorf("unknown github backend %q (expected %q or %q)", c.GitHub.Backend, BackendCLI, BackendREST)
	}

	if c.GitHub.Backend == BackendCLI && c.GitHub.Command == "" {
		return fmt.Errorf("github command is required for the %q backend", BackendCLI)
	}

	switch c.Selector {
	case SelectorNumbered, SelectorFzf:
	default:
		return fmt.Errorf("unknown selector %q (expected %q or %q)", c.Selector, SelectorNumbered, SelectorFzf)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}

	return nil
}
