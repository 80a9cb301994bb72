package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"LOG_FILE" env-default:""`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Players  Players `yaml:"players"`
	Rules    Rules   `yaml:"rules"`
}

type Players struct {
	X           string `yaml:"x" env:"PLAYER_X" env-default:"Player 1"`
	O           string `yaml:"o" env:"PLAYER_O" env-default:"Player 2"`
	RandomNames bool   `yaml:"random-names" env:"PLAYER_RANDOM_NAMES" env-default:"false"`
}

type Rules struct {
	AllowEmptyNames       bool `yaml:"allow-empty-names" env:"RULES_ALLOW_EMPTY_NAMES" env-default:"false"`
	LockNamesWhenFinished bool `yaml:"lock-names-when-finished" env:"RULES_LOCK_NAMES_WHEN_FINISHED" env-default:"false"`
}

// Load - reads the config file at path, falling back to environment and defaults when it is missing.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}
