package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/turnoswap/turnoswap/pkg/core/model"
)

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// DefaultMode controls matching when no mode flag is given:
	// STRICT only proposes exchanges, FLEXIBLE also proposes gifts
	DefaultMode string `yaml:"defaultMode" validate:"required,oneof=STRICT FLEXIBLE"`

	// MaxConsecutiveShifts caps calendar-consecutive shift days per slot
	MaxConsecutiveShifts int `yaml:"maxConsecutiveShifts" validate:"min=1"`

	// MaxCandidates limits how many ranked candidates are persisted per run
	MaxCandidates int `yaml:"maxCandidates" validate:"min=1"`

	// NightShiftMarkers are substrings identifying night shift labels,
	// matched case-insensitively
	NightShiftMarkers []string `yaml:"nightShiftMarkers,omitempty"`

	// HolidayRules are RRULE strings describing recurring public holidays
	// (e.g. "DTSTART:20200101T000000Z\nRRULE:FREQ=YEARLY")
	HolidayRules []string `yaml:"holidayRules,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from turnoswap.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
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

	cfg := Config{
		DefaultMode:          string(model.ModeStrict),
		MaxConsecutiveShifts: 6,
		MaxCandidates:        10,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks holiday rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRuleSet(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// HolidayDates expands the configured holiday rules into the set of calendar
// dates falling inside [from, to]
func (c *Config) HolidayDates(from, to time.Time) (map[string]bool, error) {
	holidays := make(map[string]bool)
	for i, rule := range c.HolidayRules {
		set, err := rrule.StrToRRuleSet(rule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
		for _, occurrence := range set.Between(from, to, true) {
			holidays[occurrence.Format(model.DateLayout)] = true
		}
	}
	return holidays, nil
}

// findConfigFile searches for turnoswap.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "turnoswap.yaml"

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
