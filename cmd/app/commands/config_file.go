package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/allisson/deliverydash/internal/delivery"
)

// readConfigFile decodes, normalizes and validates a delivery configuration file.
func readConfigFile(path string) (delivery.Config, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return delivery.Config{}, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := delivery.DefaultConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return delivery.Config{}, raw, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return delivery.Config{}, raw, fmt.Errorf("invalid config file: %w", err)
	}
	return cfg, raw, nil
}
