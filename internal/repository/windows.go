package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"attune/internal/database"
	"attune/internal/models"
)

// featureColumns maps canonical feature names onto feature-store columns.
// Timeline queries only ever interpolate values from this map.
var featureColumns = map[string]string{
	models.KeyMeanFixationDuration: "mean_fixation_duration",
	models.KeyNumOfFixations:       "num_of_fixations",
	models.KeyMeanSaccadeDuration:  "mean_saccade_duration",
	models.KeyBpm:                  "bpm",
	models.KeyRereadFrequency:      "reread_frequency",
	models.KeyEnvFixationRatio:     "env_fixation_ratio",
	models.KeyClickCount:           "click_count",
}

// SaveWindowResult persists one analyzed window, its feature row, and (when
// the classifier was reachable) its prediction, in a single transaction.
func SaveWindowResult(window *models.ObservationWindow, row *models.WindowFeatureRow, prediction *models.Prediction) error {
	if database.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(window).Error; err != nil {
			return err
		}

		row.WindowID = window.ID
		if err := tx.Create(row).Error; err != nil {
			return err
		}

		if prediction != nil {
			prediction.WindowID = window.ID
			if err := tx.Create(prediction).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListFeatureRows returns the whole feature store in insertion order, the
// shape the CSV export streams to the training pipeline.
func ListFeatureRows() ([]models.WindowFeatureRow, error) {
	if database.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	var rows []models.WindowFeatureRow
	err := database.DB.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// TimelinePoint is one sample of a feature's evolution over a session.
type TimelinePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// FeatureTimeline returns the stored values of one feature across a session's
// windows, oldest first.
func FeatureTimeline(sessionID, featureKey string) ([]TimelinePoint, error) {
	if database.DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	column, ok := featureColumns[featureKey]
	if !ok {
		return nil, fmt.Errorf("unknown feature %q", featureKey)
	}

	query := fmt.Sprintf(
		`SELECT created_at AS date, %s AS value FROM window_feature_rows WHERE session_id = ? ORDER BY created_at ASC`,
		column,
	)

	var points []TimelinePoint
	err := database.DB.Raw(query, sessionID).Scan(&points).Error
	return points, err
}
