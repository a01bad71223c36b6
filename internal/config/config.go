package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"scopone-game/internal/types"
)

// Output formats for the event presenter
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputNone = "none"
)

// Config holds all configuration for the simulator
type Config struct {
	// Rosters
	Team1 [2]string
	Team2 [2]string

	// Run shape
	Matches     int    // matches per tournament
	Tournaments int    // independent tournaments; more than one runs on the batch pool
	Workers     int    // batch pool size
	Seed        uint64 // 0 picks a time-based seed
	Human       string // player name driven from stdin, empty for a fully automated run

	// Surfaces
	Output        string // text, json or none
	SpectatorAddr string // listen address for the spectator hub, empty disables it
	LogLevel      string

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables, after loading .env if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment.
func FromEnv() (*Config, error) {
	team1, err := parseTeam("SCOPONE_TEAM1", "Anna,Bruno")
	if err != nil {
		return nil, err
	}
	team2, err := parseTeam("SCOPONE_TEAM2", "Carla,Dario")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Team1:         team1,
		Team2:         team2,
		Human:         strings.TrimSpace(os.Getenv("SCOPONE_HUMAN")),
		Output:        strings.ToLower(getEnvWithDefault("SCOPONE_OUTPUT", OutputText)),
		SpectatorAddr: os.Getenv("SPECTATOR_ADDR"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if cfg.Matches, err = getEnvInt("SCOPONE_MATCHES", 10); err != nil {
		return nil, err
	}
	if cfg.Tournaments, err = getEnvInt("SCOPONE_TOURNAMENTS", 1); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("SCOPONE_WORKERS", 4); err != nil {
		return nil, err
	}
	seed, err := getEnvInt("SCOPONE_SEED", 0)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, types.NewGameError(types.ErrInvalidConfig, "SCOPONE_SEED must not be negative")
	}
	cfg.Seed = uint64(seed)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that the configuration describes a playable run
func (c *Config) validate() error {
	names := map[string]bool{}
	for _, name := range append(c.Team1[:], c.Team2[:]...) {
		if name == "" {
			return types.NewGameError(types.ErrInvalidConfig, "player names must not be empty")
		}
		if names[name] {
			return types.Errorf(types.ErrInvalidConfig, "duplicate player name %q", name)
		}
		names[name] = true
	}
	if c.Matches < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "SCOPONE_MATCHES must be at least 1")
	}
	if c.Tournaments < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "SCOPONE_TOURNAMENTS must be at least 1")
	}
	if c.Workers < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "SCOPONE_WORKERS must be at least 1")
	}
	if c.Human != "" {
		if !names[c.Human] {
			return types.Errorf(types.ErrInvalidConfig, "SCOPONE_HUMAN %q is not one of the players", c.Human)
		}
		if c.Tournaments > 1 {
			return types.NewGameError(types.ErrInvalidConfig, "an interactive player can only sit in a single tournament")
		}
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputNone:
	default:
		return types.Errorf(types.ErrInvalidConfig, "unknown SCOPONE_OUTPUT %q", c.Output)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Batch reports whether the run goes to the batch pool.
func (c *Config) Batch() bool {
	return c.Tournaments > 1
}

// BatchDropsEvents reports whether an event surface was requested for a batch run,
// which only reports aggregate statistics and final results.
func (c *Config) BatchDropsEvents() bool {
	return c.Batch() && (c.Output == OutputJSON || c.SpectatorAddr != "")
}

// Interactive reports whether a human takes part in the run.
func (c *Config) Interactive() bool {
	return c.Human != ""
}

func parseTeam(key, defaultValue string) ([2]string, error) {
	parts := strings.Split(getEnvWithDefault(key, defaultValue), ",")
	if len(parts) != 2 {
		return [2]string{}, types.Errorf(types.ErrInvalidConfig, "%s must name exactly two players", key)
	}
	return [2]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}, nil
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, types.WrapError(types.ErrInvalidConfig, key+" must be an integer", err)
	}
	return n, nil
}
