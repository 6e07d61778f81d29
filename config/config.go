// Package config loads game settings from the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"xpquest/ledger"
	"xpquest/storage"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	Store           string `env:"XPQUEST_STORE" envDefault:"json"`
	StatePath       string `env:"XPQUEST_STATE_PATH" envDefault:"ai_state.json"`
	KBCPolicy       string `env:"XPQUEST_KBC_POLICY" envDefault:"clamp_to_one"`
	LibraryGate     int    `env:"XPQUEST_LIBRARY_GATE" envDefault:"50"`
	TranscriptTurns int    `env:"XPQUEST_TRANSCRIPT_TURNS" envDefault:"20"`
	QuestionsPath   string `env:"XPQUEST_QUESTIONS_PATH"`
	Seed            int64  `env:"XPQUEST_SEED" envDefault:"0"`
}

// LoadDotEnv reads .env from the working directory if present.
func LoadDotEnv(logger *log.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Printf("Warning: .env file not found or error loading it: %v", err)
	}
}

// ParseConfig reads environment defaults, then lets flags in args override them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Store, "store", cfg.Store, "State storage driver (json or sqlite)")
	fs.StringVar(&cfg.StatePath, "state", cfg.StatePath, "Path of the saved Tamagotchi state")
	fs.StringVar(&cfg.KBCPolicy, "policy", cfg.KBCPolicy, "KBC reward policy (clamp_to_one or unclamped)")
	fs.IntVar(&cfg.LibraryGate, "library-gate", cfg.LibraryGate, "Lifetime XP needed to enter the Library")
	fs.IntVar(&cfg.TranscriptTurns, "turns", cfg.TranscriptTurns, "Conversation turns kept in the prompt")
	fs.StringVar(&cfg.QuestionsPath, "questions", cfg.QuestionsPath, "YAML file with Oracle questions")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one from the clock)")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no subcommand can run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case storage.DriverJSON, storage.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("store must be %q or %q, got %q", storage.DriverJSON, storage.DriverSQLite, c.Store))
	}
	if strings.TrimSpace(c.StatePath) == "" {
		errs = append(errs, errors.New("state path is required"))
	}
	if _, err := ledger.ParseClamp(c.KBCPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.LibraryGate < 0 {
		errs = append(errs, fmt.Errorf("library gate must be non-negative, got %d", c.LibraryGate))
	}
	if c.TranscriptTurns <= 0 {
		errs = append(errs, fmt.Errorf("transcript turns must be positive, got %d", c.TranscriptTurns))
	}
	return errors.Join(errs...)
}

// Clamp returns the parsed KBC clamp policy. Call after Validate.
func (c Config) Clamp() ledger.Clamp {
	clamp, _ := ledger.ParseClamp(c.KBCPolicy)
	return clamp
}
