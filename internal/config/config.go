package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/allocator"
)

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	DSN string `yaml:"dsn" validate:"required"`
}

// ServerConfig holds the HTTP trigger surface settings (timeouts in seconds)
type ServerConfig struct {
	Port            int `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     int `yaml:"readTimeout" validate:"min=1"`
	WriteTimeout    int `yaml:"writeTimeout" validate:"min=1"`
	ShutdownTimeout int `yaml:"shutdownTimeout" validate:"min=1"`
}

// SchedulingConfig holds the tunable fairness policy for rota generation.
// The rotation tiers are policy, not algorithm, so they live in config
// rather than code.
type SchedulingConfig struct {
	// LookbackDays bounds the rotation history window behind the target week
	LookbackDays int `yaml:"lookbackDays" validate:"min=7"`

	// RotationPenalties are the score penalties for an operator assigned to
	// the same area 1, 2, 3 and 4 weeks ago
	RotationPenalties [4]int `yaml:"rotationPenalties" validate:"dive,max=0"`

	// DefaultPilots is the pilot headcount assumed when a daily line plan
	// leaves pilots_required unset
	DefaultPilots int `yaml:"defaultPilots" validate:"min=1"`
}

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Server     ServerConfig     `yaml:"server"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
}

// PenaltyTiers returns the configured rotation penalties as allocator tiers
func (c SchedulingConfig) PenaltyTiers() allocator.PenaltyTiers {
	return allocator.PenaltyTiers(c.RotationPenalties)
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

const configFileName = "magor_rota_config.yaml"

// Load loads and validates the configuration from magor_rota_config.yaml,
// looking in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// defaultConfig returns a config pre-filled with the policy defaults, so a
// deployment only has to set the database DSN
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			ShutdownTimeout: 10,
		},
		Scheduling: SchedulingConfig{
			LookbackDays:      allocator.DefaultLookbackDays,
			RotationPenalties: [4]int(allocator.DefaultPenaltyTiers),
			DefaultPilots:     allocator.DefaultPilotsRequired,
		},
	}
}

// findConfigFile searches for magor_rota_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
