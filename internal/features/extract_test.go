package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attune/internal/models"
)

func TestExtractSingleFixationWindow(t *testing.T) {
	w := &models.Window{
		GazeLog: steadyGaze(100, 100, "p1", 0, 30, 60, 100, 150),
	}

	feats := Extract(w, DefaultThresholds(), []string{"p1"})
	assert.Equal(t, 150.0, feats.MeanFixationDuration)
	assert.Equal(t, 1.0, feats.NumOfFixations)
	assert.Equal(t, 0.0, feats.MeanSaccadeDuration)
	assert.Equal(t, 0.0, feats.Bpm)
	assert.Equal(t, 0.0, feats.EnvFixationRatio)
	assert.Equal(t, 0.0, feats.ClickCount)
}

func TestExtractTwoClusterWindow(t *testing.T) {
	w := &models.Window{
		GazeLog: append(
			steadyGaze(100, 100, "p1", 0, 40, 80, 120),
			steadyGaze(500, 500, "p2", 200, 275, 350)...,
		),
	}

	feats := Extract(w, DefaultThresholds(), []string{"p1", "p2"})
	assert.Equal(t, 2.0, feats.NumOfFixations)
	assert.InDelta(t, 135.0, feats.MeanFixationDuration, 1e-9)
	assert.Equal(t, 80.0, feats.MeanSaccadeDuration)
}

func TestExtractEmptyStreamsDegradeToZero(t *testing.T) {
	w := &models.Window{
		Interactions: []models.InteractionEvent{
			{T: 100, Type: "click"},
			{T: 200, Type: "scroll"},
		},
	}

	feats := Extract(w, DefaultThresholds(), nil)
	assert.Equal(t, 0.0, feats.MeanFixationDuration)
	assert.Equal(t, 0.0, feats.NumOfFixations)
	assert.Equal(t, 0.0, feats.MeanSaccadeDuration)
	assert.Equal(t, 0.0, feats.Bpm)
	assert.Equal(t, 0.0, feats.RereadFrequency)
	assert.Equal(t, 0.0, feats.EnvFixationRatio)
	assert.Equal(t, 1.0, feats.ClickCount)
}

func TestExtractMeanBpm(t *testing.T) {
	w := &models.Window{
		HeartRate: []models.HeartRateSample{
			{T: 0, Bpm: 60},
			{T: 500, Bpm: 70},
			{T: 1000, Bpm: 80},
		},
	}
	feats := Extract(w, DefaultThresholds(), nil)
	assert.InDelta(t, 70.0, feats.Bpm, 1e-9)
}

func TestExtractRereadWithinWindow(t *testing.T) {
	w := &models.Window{
		GazeLog: append(append(
			steadyGaze(100, 100, "p1", 0, 60, 120),
			steadyGaze(500, 500, "p2", 200, 260, 330)...),
			steadyGaze(110, 105, "p1", 400, 460, 530)...,
		),
	}

	feats := Extract(w, DefaultThresholds(), []string{"p1", "p2"})
	assert.Equal(t, 3.0, feats.NumOfFixations)
	// Counting is per sample: within each run every sample after the first
	// re-encounters a seen AOI (1+1 in p1, 1+1 in p2), and the whole return
	// to p1 adds three more.
	assert.Equal(t, 7.0, feats.RereadFrequency)
}

func TestExtractIsDeterministic(t *testing.T) {
	w := &models.Window{
		GazeLog: append(
			steadyGaze(100, 100, "p1", 0, 40, 80, 130),
			steadyGaze(400, 300, "menu", 200, 260, 330)...,
		),
		Interactions: []models.InteractionEvent{{T: 50, Type: "click"}},
		HeartRate:    []models.HeartRateSample{{T: 0, Bpm: 72}},
	}

	first := Extract(w, DefaultThresholds(), []string{"p1"})
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Extract(w, DefaultThresholds(), []string{"p1"}))
	}
}

func TestExtractMapCoversCanonicalKeys(t *testing.T) {
	m := Extract(&models.Window{}, DefaultThresholds(), nil).Map()
	for _, key := range []string{
		models.KeyMeanFixationDuration,
		models.KeyNumOfFixations,
		models.KeyMeanSaccadeDuration,
		models.KeyBpm,
		models.KeyRereadFrequency,
		models.KeyEnvFixationRatio,
		models.KeyClickCount,
	} {
		_, ok := m[key]
		assert.True(t, ok, "missing key %s", key)
	}
}
