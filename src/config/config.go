package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

const (
	DefaultMinFloor       = 1
	DefaultMaxFloor       = 12
	DefaultNumElevators   = 3
	DefaultCapacity       = 5
	DefaultTravelInterval = 1 * time.Second

	EventBufferSize = 64
	ShutdownTimeout = 5 * time.Second
)

// FleetConfig holds the building and fleet parameters. Durations are
// nanoseconds when given in a config file.
type FleetConfig struct {
	MinFloor       int           `yaml:"MinFloor"`
	MaxFloor       int           `yaml:"MaxFloor"`
	NumElevators   int           `yaml:"NumElevators"`
	Capacity       int           `yaml:"Capacity"`
	TravelInterval time.Duration `yaml:"TravelInterval"`
}

func Default() FleetConfig {
	return FleetConfig{
		MinFloor:       DefaultMinFloor,
		MaxFloor:       DefaultMaxFloor,
		NumElevators:   DefaultNumElevators,
		Capacity:       DefaultCapacity,
		TravelInterval: DefaultTravelInterval,
	}
}

// Load reads a YAML fleet config. Fields absent from the file keep their
// default values.
func Load(path string) (FleetConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read fleet config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse fleet config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c FleetConfig) Validate() error {
	if c.MinFloor >= c.MaxFloor {
		return fmt.Errorf("invalid floor range [%d, %d]", c.MinFloor, c.MaxFloor)
	}
	if c.NumElevators < 1 {
		return fmt.Errorf("fleet needs at least one elevator, got %d", c.NumElevators)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("elevator capacity must be positive, got %d", c.Capacity)
	}
	if c.TravelInterval < 0 {
		return fmt.Errorf("travel interval must not be negative, got %v", c.TravelInterval)
	}
	return nil
}
