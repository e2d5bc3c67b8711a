package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/tablestakes/kuhn/engine"
)

// config collects the table settings, read from the environment with an
// optional .env file on top of the defaults.
type config struct {
	Engine        engine.Config
	StartingChips uint64
	Samples       int
}

func loadConfig() (config, error) {
	// a missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	cfg := config{
		Engine:        engine.DefaultConfig(),
		StartingChips: 10,
		Samples:       10000,
	}
	if v := os.Getenv("KUHN_TURN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config{}, fmt.Errorf("KUHN_TURN_TIMEOUT: %w", err)
		}
		cfg.Engine.TurnTimeout = d
	}
	if v := os.Getenv("KUHN_STARTING_CHIPS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return config{}, fmt.Errorf("KUHN_STARTING_CHIPS: %w", err)
		}
		if n == 0 {
			return config{}, fmt.Errorf("KUHN_STARTING_CHIPS: must be positive")
		}
		cfg.StartingChips = n
	}
	if v := os.Getenv("KUHN_SAMPLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return config{}, fmt.Errorf("KUHN_SAMPLES: %w", err)
		}
		if n <= 0 {
			return config{}, fmt.Errorf("KUHN_SAMPLES: must be positive")
		}
		cfg.Samples = n
	}
	return cfg, nil
}
