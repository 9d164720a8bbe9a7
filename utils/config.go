package utils

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"mlpnet/mlp"
)

// Config holds training configuration
type Config struct {
	Architecture []int
	LearningRate float64
	Init         string
	Epochs       int
	Samples      int
	Seed         uint64
}

// ParseArchitecture parses architecture string into slice of integers.
// Layer sizes may be separated by whitespace or commas.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if err := mlp.Topology(config.Architecture).Validate(); err != nil {
		return fmt.Errorf("architecture: %w", err)
	}

	if !(config.LearningRate > 0) {
		return fmt.Errorf("learning rate must be positive")
	}

	if _, err := mlp.ParseInitKind(config.Init); err != nil {
		return err
	}

	if config.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}

	if config.Samples < 0 {
		return fmt.Errorf("samples must not be negative")
	}

	return nil
}

// NetworkConfig converts a validated Config into the network's own
// configuration, seeding weight initialization from Seed.
func (c *Config) NetworkConfig() (mlp.Config, error) {
	kind, err := mlp.ParseInitKind(c.Init)
	if err != nil {
		return mlp.Config{}, err
	}
	return mlp.Config{
		Topology:     mlp.Topology(c.Architecture),
		LearningRate: c.LearningRate,
		Init:         kind,
		Src:          rand.NewSource(c.Seed),
	}, nil
}
