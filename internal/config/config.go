package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Quiz struct {
		Rounds           int `yaml:"rounds"`
		RoundSeconds     int `yaml:"round_seconds"`
		PointsPerCorrect int `yaml:"points_per_correct"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and fills in defaults for anything unset.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = "quiz_app.db"
	}
	if cfg.Quiz.Rounds <= 0 {
		cfg.Quiz.Rounds = 5
	}
	if cfg.Quiz.RoundSeconds <= 0 {
		cfg.Quiz.RoundSeconds = 30
	}
	if cfg.Quiz.PointsPerCorrect <= 0 {
		cfg.Quiz.PointsPerCorrect = 10
	}
}
