package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ConfigFileEnv names the environment variable holding the JSON config path.
const ConfigFileEnv = "CLASSMATE_CONFIG_FILE"

// ARCHITECTURAL DISCOVERY: Configuration layer serves as system-wide settings coordinator
type Config struct {
	Database *DatabaseConfig `json:"database"`
	Shell    *ShellConfig    `json:"shell"`
	Log      *LogConfig      `json:"log"`
}

// DatabaseConfig locates the SQLite store. Timeout bounds a single write.
type DatabaseConfig struct {
	Path    string        `json:"path"`
	Timeout time.Duration `json:"timeout"`
}

type ShellConfig struct {
	Prompt string `json:"prompt"`
}

// LogConfig routes the standard logger. Without Verbose, log output is
// discarded so it never interleaves with shell output.
type LogConfig struct {
	File    string `json:"file"`
	Verbose bool   `json:"verbose"`
}

// DefaultConfig keeps the database next to the working directory and logs
// nowhere.
func DefaultConfig() *Config {
	return &Config{
		Database: &DatabaseConfig{
			Path:    "./data/classmate.db",
			Timeout: 30 * time.Second,
		},
		Shell: &ShellConfig{
			Prompt: "classmate> ",
		},
		Log: &LogConfig{},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Database == nil {
		return fmt.Errorf("database configuration is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("database timeout must be positive")
	}
	if c.Shell == nil {
		return fmt.Errorf("shell configuration is required")
	}
	if c.Log == nil {
		return fmt.Errorf("log configuration is required")
	}
	return nil
}

// envConfig mirrors the settings that can come from the environment. Unset
// variables leave the prefilled value alone.
type envConfig struct {
	DatabasePath    string        `env:"CLASSMATE_DATABASE_PATH"`
	DatabaseTimeout time.Duration `env:"CLASSMATE_DATABASE_TIMEOUT"`
	ShellPrompt     string        `env:"CLASSMATE_SHELL_PROMPT"`
	LogFile         string        `env:"CLASSMATE_LOG_FILE"`
	LogVerbose      bool          `env:"CLASSMATE_LOG_VERBOSE"`
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadFromEnv returns the defaults overridden by CLASSMATE_* variables.
func LoadFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := applyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(config *Config) error {
	raw := envConfig{
		DatabasePath:    config.Database.Path,
		DatabaseTimeout: config.Database.Timeout,
		ShellPrompt:     config.Shell.Prompt,
		LogFile:         config.Log.File,
		LogVerbose:      config.Log.Verbose,
	}
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	config.Database.Path = raw.DatabasePath
	config.Database.Timeout = raw.DatabaseTimeout
	config.Shell.Prompt = raw.ShellPrompt
	config.Log.File = raw.LogFile
	config.Log.Verbose = raw.LogVerbose
	return nil
}

// ConfigFile is the JSON layout of a config file. Durations are strings such
// as "30s"; absent fields keep their previous value.
type ConfigFile struct {
	Database *DatabaseConfigFile `json:"database"`
	Shell    *ShellConfigFile    `json:"shell"`
	Log      *LogConfigFile      `json:"log"`
}

type DatabaseConfigFile struct {
	Path    string `json:"path"`
	Timeout string `json:"timeout"`
}

type ShellConfigFile struct {
	Prompt *string `json:"prompt"`
}

type LogConfigFile struct {
	File    string `json:"file"`
	Verbose *bool  `json:"verbose"`
}

// LoadFromFile returns the defaults overridden by the JSON file at path.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := applyFile(config, path); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

func applyFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file ConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.Database != nil {
		if file.Database.Path != "" {
			config.Database.Path = file.Database.Path
		}
		if file.Database.Timeout != "" {
			timeout, err := time.ParseDuration(file.Database.Timeout)
			if err != nil {
				return fmt.Errorf("invalid database timeout in %s: %w", path, err)
			}
			config.Database.Timeout = timeout
		}
	}
	if file.Shell != nil && file.Shell.Prompt != nil {
		config.Shell.Prompt = *file.Shell.Prompt
	}
	if file.Log != nil {
		if file.Log.File != "" {
			config.Log.File = file.Log.File
		}
		if file.Log.Verbose != nil {
			config.Log.Verbose = *file.Log.Verbose
		}
	}
	return nil
}

// LoadConfigWithPrecedence layers defaults, then the environment, then the
// JSON file at path when path is not empty. The result is validated.
// FUNCTIONAL DISCOVERY: Unlike a missing optional .env, an explicitly named
// config file that cannot be read is an error.
func LoadConfigWithPrecedence(path string) (*Config, error) {
	config := DefaultConfig()
	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}
