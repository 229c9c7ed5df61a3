// Package config loads plunder's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/plunder/internal/sea"
)

// Environment overrides.
const (
	EnvDB        = "PLUNDER_DB"
	EnvSeed      = "PLUNDER_SEED"
	EnvRandomOrg = "RANDOM_ORG_API_KEY"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Seed     int64  `yaml:"seed"` // 0 draws a seed from entropy
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`

	// Names is the island name table; empty uses the built-in table.
	Names []string `yaml:"names,omitempty"`

	Sea    sea.GenConfig `yaml:"sea"`
	Plan   PlanConfig    `yaml:"plan"`
	Voyage VoyageConfig  `yaml:"voyage"`

	RandomOrgKey string `yaml:"-"`
}

// PlanConfig drives the static allocator.
type PlanConfig struct {
	Crew  int   `yaml:"crew"`
	Crews []int `yaml:"crews"` // Crew sizes compared by the loot table
}

// VoyageConfig drives the dynamic allocator.
type VoyageConfig struct {
	Pirates        int           `yaml:"pirates"`
	Days           int           `yaml:"days"`
	CrewSchedule   []int         `yaml:"crew_schedule"` // Crew per round, one entry per day, repeating
	Reinforcements int           `yaml:"reinforcements"` // Islands sighted each week
	Interval       time.Duration `yaml:"interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed:     42,
		DBPath:   "data/plunder.db",
		LogLevel: "info",
		Sea:      sea.DefaultGenConfig(),
		Plan: PlanConfig{
			Crew:  200,
			Crews: []int{50, 100, 200, 400},
		},
		Voyage: VoyageConfig{
			Pirates:        5,
			Days:           14,
			CrewSchedule:   []int{20, 30, 25},
			Reinforcements: 4,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	c.RandomOrgKey = os.Getenv(EnvRandomOrg)
	return nil
}

// Validate rejects settings the allocators cannot run with.
func (c Config) Validate() error {
	var problems []string
	if c.Plan.Crew < 0 {
		problems = append(problems, "plan.crew is negative")
	}
	for _, crew := range c.Plan.Crews {
		if crew < 0 {
			problems = append(problems, "plan.crews has a negative entry")
			break
		}
	}
	if c.Voyage.Pirates < 0 {
		problems = append(problems, "voyage.pirates is negative")
	}
	if c.Voyage.Days < 0 {
		problems = append(problems, "voyage.days is negative")
	}
	if len(c.Voyage.CrewSchedule) == 0 {
		problems = append(problems, "voyage.crew_schedule is empty")
	}
	for _, crew := range c.Voyage.CrewSchedule {
		if crew < 0 {
			problems = append(problems, "voyage.crew_schedule has a negative entry")
			break
		}
	}
	if c.Voyage.Reinforcements < 0 {
		problems = append(problems, "voyage.reinforcements is negative")
	}
	if c.Sea.Radius < 0 {
		problems = append(problems, "sea.radius is negative")
	}
	if c.Sea.SeaLevel < 0 || c.Sea.SeaLevel >= 1 {
		problems = append(problems, "sea.sea_level must be in [0, 1)")
	}
	if c.Sea.MaxMoney < 0 || c.Sea.MaxMarines < 0 {
		problems = append(problems, "sea maxima are negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Write saves cfg as YAML.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
