package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attune/internal/models"
)

func TestDecodeWindowValidPayload(t *testing.T) {
	raw := []byte(`{
		"window_id": "w-1",
		"session_id": "s-1",
		"content_id": "article-7",
		"gaze_log": [
			{"t": 0, "x": 100, "y": 100, "aoi": "p1"},
			{"t": 50, "x": 102, "y": 99}
		],
		"interactions": [{"t": 20, "type": "click"}],
		"heart_rate": [{"t": 0, "bpm": 71.5}]
	}`)

	w, err := DecodeWindow(raw)
	require.NoError(t, err)

	assert.Equal(t, "w-1", w.WindowID)
	assert.Equal(t, "article-7", w.ContentID)
	require.Len(t, w.GazeLog, 2)
	assert.Equal(t, "p1", w.GazeLog[0].AOI)
	// Missing AOI normalizes to the sentinel.
	assert.Equal(t, models.AOINone, w.GazeLog[1].AOI)
}

func TestDecodeWindowAssignsWindowID(t *testing.T) {
	w, err := DecodeWindow([]byte(`{"gaze_log": [], "interactions": [], "heart_rate": []}`))
	require.NoError(t, err)
	assert.NotEmpty(t, w.WindowID)
}

func TestDecodeWindowEmptyStreams(t *testing.T) {
	w, err := DecodeWindow([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, w.GazeLog)
	assert.Empty(t, w.Interactions)
	assert.Empty(t, w.HeartRate)
}

func TestDecodeWindowRejectsMalformedSample(t *testing.T) {
	// Gaze sample missing its x coordinate.
	_, err := DecodeWindow([]byte(`{"gaze_log": [{"t": 0, "y": 100}]}`))
	assert.Error(t, err)

	// Heart-rate sample missing bpm.
	_, err = DecodeWindow([]byte(`{"heart_rate": [{"t": 0}]}`))
	assert.Error(t, err)

	// Wrong type entirely.
	_, err = DecodeWindow([]byte(`{"gaze_log": [{"t": "zero", "x": 1, "y": 2}]}`))
	assert.Error(t, err)
}

func TestDecodeWindowRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeWindow([]byte(`{not json`))
	assert.Error(t, err)
}
