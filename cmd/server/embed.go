//go:build embed
// +build embed

package main

import (
	_ "embed"

	"github.com/kavanaghpatrick/rent-fair-value/internal/config"
)

// The embed build bakes the model artifact into the binary so a deployment
// is a single file with no filesystem dependencies.

//go:embed models/rent_model.json
var embeddedModel []byte

//go:embed models/feature_order.json
var embeddedFeatureOrder []byte

// loadArtifactBytes returns the artifact compiled into the binary
func loadArtifactBytes(_ *config.Config) ([]byte, []byte, error) {
	return embeddedModel, embeddedFeatureOrder, nil
}
