//go:build !embed
// +build !embed

package main

import (
	"fmt"
	"os"

	"github.com/kavanaghpatrick/rent-fair-value/internal/config"
)

// loadArtifactBytes reads the model artifact from the configured paths.
// The embed build replaces this with compiled-in bytes.
func loadArtifactBytes(cfg *config.Config) ([]byte, []byte, error) {
	modelBytes, err := os.ReadFile(cfg.Model.ModelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model dump %s: %w", cfg.Model.ModelPath, err)
	}
	featureOrderBytes, err := os.ReadFile(cfg.Model.FeatureOrderPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read feature order %s: %w", cfg.Model.FeatureOrderPath, err)
	}
	return modelBytes, featureOrderBytes, nil
}
