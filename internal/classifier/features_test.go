package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFeatureList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_list.json")
	content := `{"features": ["Mean_Fixation_Duration", "Num_of_Fixations", "Bpm"]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	list, err := LoadFeatureList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mean_Fixation_Duration", "Num_of_Fixations", "Bpm"}, list.Names)
}

func TestLoadFeatureListEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_list.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"features": []}`), 0o644))

	_, err := LoadFeatureList(path)
	assert.Error(t, err)
}

func TestLoadFeatureListMissingFile(t *testing.T) {
	_, err := LoadFeatureList(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReconcileCaseInsensitive(t *testing.T) {
	list := &FeatureList{Names: []string{"Mean_Fixation_Duration", "Bpm"}}

	out := list.Reconcile(map[string]float64{
		"mean_fixation_duration": 150,
		"BPM":                    72,
	})
	assert.Equal(t, 150.0, out["Mean_Fixation_Duration"])
	assert.Equal(t, 72.0, out["Bpm"])
}

func TestReconcileFillsAbsentWithZero(t *testing.T) {
	list := &FeatureList{Names: []string{"Mean_Fixation_Duration", "Sdnn", "Rmssd"}}

	out := list.Reconcile(map[string]float64{"Mean_Fixation_Duration": 150})
	require.Len(t, out, 3)
	assert.Equal(t, 0.0, out["Sdnn"])
	assert.Equal(t, 0.0, out["Rmssd"])
}

func TestReconcileIgnoresExtraInput(t *testing.T) {
	list := &FeatureList{Names: []string{"Bpm"}}

	out := list.Reconcile(map[string]float64{"Bpm": 60, "Click_Count": 3})
	assert.Equal(t, map[string]float64{"Bpm": 60}, out)
}

func TestStateLabels(t *testing.T) {
	assert.Equal(t, "Focused Interest", LabelFor(StateFocusedInterest))
	assert.Equal(t, "Sleepiness", LabelFor(StateSleepiness))
	assert.Equal(t, "Unknown", LabelFor(9))
}

func TestInterventionNeeded(t *testing.T) {
	assert.False(t, InterventionNeeded(StateFocusedInterest))
	assert.True(t, InterventionNeeded(StateConfusion))
	assert.True(t, InterventionNeeded(StateFrustration))
	assert.False(t, InterventionNeeded(StateSleepiness))
}
