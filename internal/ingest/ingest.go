// Package ingest is the validation boundary between raw client payloads and
// the feature engine. Payloads are checked against a JSON Schema exactly once
// here; downstream code assumes well-formed samples and stays non-defensive.
package ingest

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"attune/internal/models"
)

//go:embed window_schema.json
var windowSchemaJSON string

var windowSchema = jsonschema.MustCompileString("window_schema.json", windowSchemaJSON)

// DecodeWindow validates a raw window payload and decodes it. A window with
// no ID is assigned one, and gaze samples without an AOI get the NONE
// sentinel so the engine sees a uniform stream.
func DecodeWindow(raw []byte) (*models.Window, error) {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("window payload is not valid JSON: %w", err)
	}
	if err := windowSchema.Validate(instance); err != nil {
		return nil, fmt.Errorf("window payload failed validation: %w", err)
	}

	var w models.Window
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("failed to decode window payload: %w", err)
	}

	if w.WindowID == "" {
		w.WindowID = uuid.NewString()
	}
	for i := range w.GazeLog {
		if w.GazeLog[i].AOI == "" {
			w.GazeLog[i].AOI = models.AOINone
		}
	}
	return &w, nil
}
