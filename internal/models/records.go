package models

import (
	"encoding/json"
	"time"
)

// ObservationWindow is the persisted form of one ingested window. The raw
// streams are kept verbatim so features can be re-derived after threshold
// changes.
type ObservationWindow struct {
	ID           string `gorm:"primaryKey"`
	SessionID    string
	ContentID    string
	GazeLog      json.RawMessage `gorm:"type:jsonb"`
	Interactions json.RawMessage `gorm:"type:jsonb"`
	HeartRate    json.RawMessage `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

// WindowFeatureRow is one row of the feature store, the tabular shape the
// training pipeline consumes.
type WindowFeatureRow struct {
	ID                   int `gorm:"primaryKey"`
	WindowID             string
	SessionID            string
	ContentID            string
	MeanFixationDuration float64
	NumOfFixations       float64
	MeanSaccadeDuration  float64
	Bpm                  float64
	RereadFrequency      float64
	EnvFixationRatio     float64
	ClickCount           float64
	CreatedAt            time.Time
}

// Features reconstructs the feature value object from a stored row.
func (r WindowFeatureRow) Features() WindowFeatures {
	return WindowFeatures{
		MeanFixationDuration: r.MeanFixationDuration,
		NumOfFixations:       r.NumOfFixations,
		MeanSaccadeDuration:  r.MeanSaccadeDuration,
		Bpm:                  r.Bpm,
		RereadFrequency:      r.RereadFrequency,
		EnvFixationRatio:     r.EnvFixationRatio,
		ClickCount:           r.ClickCount,
	}
}

// Prediction records the classifier's verdict for one window.
type Prediction struct {
	ID                 int `gorm:"primaryKey"`
	WindowID           string
	StateID            int
	StateLabel         string
	InterventionNeeded bool
	CreatedAt          time.Time
}
