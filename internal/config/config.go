package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment override, e.g. GAMECENTER_LOG_LEVEL
const EnvPrefix = "GAMECENTER_"

// DefaultFile is the config file read when no path is given
const DefaultFile = "gamecenter.hcl"

// Config represents the complete game center configuration
type Config struct {
	Logging  LoggingSettings  `envPrefix:"LOG_"`
	Display  DisplaySettings  `envPrefix:"DISPLAY_"`
	Game     GameSettings     `envPrefix:"GAME_"`
	Simulate SimulateSettings `envPrefix:"SIMULATE_"`
}

// LoggingSettings controls the structured log
type LoggingSettings struct {
	Level string `hcl:"level,optional" env:"LEVEL"`
	File  string `hcl:"file,optional" env:"FILE"`
}

// DisplaySettings controls console rendering
type DisplaySettings struct {
	NoColor           bool `hcl:"no_color,optional" env:"NO_COLOR"`
	ShowOpponentCards bool `hcl:"show_opponent_cards,optional" env:"SHOW_OPPONENT_CARDS"`
}

// GameSettings applies to interactive games
type GameSettings struct {
	Seed            int64 `hcl:"seed,optional" env:"SEED"`                         // 0 picks a time-based seed
	BlackjackRounds int   `hcl:"blackjack_rounds,optional" env:"BLACKJACK_ROUNDS"` // 0 asks at the prompt
}

// SimulateSettings configures bot-vs-bot simulation
type SimulateSettings struct {
	Games   int `hcl:"games,optional" env:"GAMES"`
	Workers int `hcl:"workers,optional" env:"WORKERS"` // 0 uses one per CPU
	Timeout int `hcl:"timeout,optional" env:"TIMEOUT"` // seconds per game
	StandOn int `hcl:"stand_on,optional" env:"STAND_ON"`
}

// file mirrors Config with optional blocks for HCL decoding
type file struct {
	Logging  *LoggingSettings  `hcl:"logging,block"`
	Display  *DisplaySettings  `hcl:"display,block"`
	Game     *GameSettings     `hcl:"game,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingSettings{
			Level: "info",
			File:  "gamecenter.log",
		},
		Simulate: SimulateSettings{
			Games:   1000,
			Timeout: 5,
			StandOn: 17,
		},
	}
}

// Load reads filename (a missing file yields defaults), then applies
// environment overrides. Variables from envFiles, or .env when none are
// given, are loaded first but never replace variables already set.
func Load(filename string, envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	config, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

// LoadFile loads configuration from an HCL file without consulting the environment
func LoadFile(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply decoded values over defaults
	if l := decoded.Logging; l != nil {
		if l.Level != "" {
			config.Logging.Level = l.Level
		}
		if l.File != "" {
			config.Logging.File = l.File
		}
	}
	if d := decoded.Display; d != nil {
		config.Display = *d
	}
	if g := decoded.Game; g != nil {
		config.Game = *g
	}
	if s := decoded.Simulate; s != nil {
		if s.Games != 0 {
			config.Simulate.Games = s.Games
		}
		if s.Timeout != 0 {
			config.Simulate.Timeout = s.Timeout
		}
		if s.StandOn != 0 {
			config.Simulate.StandOn = s.StandOn
		}
		config.Simulate.Workers = s.Workers
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Game.BlackjackRounds < 0 {
		return fmt.Errorf("blackjack rounds cannot be negative")
	}

	if c.Simulate.Games <= 0 {
		return fmt.Errorf("simulate games must be positive")
	}

	if c.Simulate.Workers < 0 {
		return fmt.Errorf("simulate workers cannot be negative")
	}

	if c.Simulate.Timeout <= 0 {
		return fmt.Errorf("simulate timeout must be positive")
	}

	if c.Simulate.StandOn < 2 || c.Simulate.StandOn > 21 {
		return fmt.Errorf("stand_on must be between 2 and 21, got %d", c.Simulate.StandOn)
	}

	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// SimulateTimeout returns the per-game simulation timeout
func (c *Config) SimulateTimeout() time.Duration {
	return time.Duration(c.Simulate.Timeout) * time.Second
}
