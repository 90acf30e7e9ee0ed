package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/DoyleJ11/wordbomb-backend/internal/game"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DictionaryPath  string        `env:"DICTIONARY_PATH"`
	MaxWordLength   int           `env:"MAX_WORD_LENGTH" envDefault:"30"`
	DisconnectGrace time.Duration `env:"DISCONNECT_GRACE" envDefault:"10s"`

	StartingLives      int    `env:"STARTING_LIVES" envDefault:"2"`
	MaxLives           int    `env:"MAX_LIVES" envDefault:"3"`
	TurnDurationSec    int    `env:"TURN_DURATION" envDefault:"8"`
	MinTurnDurationSec int    `env:"MIN_TURN_DURATION" envDefault:"5"`
	MinWordLength      int    `env:"MIN_WORD_LENGTH" envDefault:"3"`
	MinWordsPerPrompt  int    `env:"MIN_WORDS_PER_PROMPT" envDefault:"5"`
	BonusTemplate      string `env:"BONUS_TEMPLATE" envDefault:"abcdefghijlmnopqrstuv"`
}

// Load reads an optional .env file and then the process environment.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		err = multierr.Append(err, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	if c.MaxWordLength <= 0 {
		err = multierr.Append(err, errors.New("MAX_WORD_LENGTH must be positive"))
	}
	if c.DisconnectGrace <= 0 {
		err = multierr.Append(err, errors.New("DISCONNECT_GRACE must be positive"))
	}
	if c.StartingLives <= 0 {
		err = multierr.Append(err, errors.New("STARTING_LIVES must be positive"))
	}
	if c.MaxLives < c.StartingLives {
		err = multierr.Append(err, errors.New("MAX_LIVES must be at least STARTING_LIVES"))
	}
	if c.MinTurnDurationSec <= 0 {
		err = multierr.Append(err, errors.New("MIN_TURN_DURATION must be positive"))
	}
	if c.TurnDurationSec < c.MinTurnDurationSec {
		err = multierr.Append(err, errors.New("TURN_DURATION must be at least MIN_TURN_DURATION"))
	}
	if c.MinWordLength <= 0 {
		err = multierr.Append(err, errors.New("MIN_WORD_LENGTH must be positive"))
	}
	if c.MinWordsPerPrompt <= 0 {
		err = multierr.Append(err, errors.New("MIN_WORDS_PER_PROMPT must be positive"))
	}
	return err
}

func (c Config) Rules() game.Rules {
	return game.Rules{
		StartingLives:      c.StartingLives,
		MaxLives:           c.MaxLives,
		BonusTemplate:      c.BonusTemplate,
		TurnDurationSec:    c.TurnDurationSec,
		MinTurnDurationSec: c.MinTurnDurationSec,
		MinWordLength:      c.MinWordLength,
		MinWordsPerPrompt:  c.MinWordsPerPrompt,
	}
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
