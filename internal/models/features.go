package models

// Canonical feature names. The training pipeline persists an ordered subset of
// these; the mapping produced by Map must always cover that list.
const (
	KeyMeanFixationDuration = "Mean_Fixation_Duration"
	KeyNumOfFixations       = "Num_of_Fixations"
	KeyMeanSaccadeDuration  = "Mean_Saccade_Duration"
	KeyBpm                  = "Bpm"
	KeyRereadFrequency      = "Reread_Frequency"
	KeyEnvFixationRatio     = "Env_Fixation_Ratio"
	KeyClickCount           = "Click_Count"
)

// WindowFeatures is the fixed-shape result of reducing one window. Every field
// is always populated and finite; absent input data yields 0, never NaN or Inf.
type WindowFeatures struct {
	MeanFixationDuration float64 `json:"Mean_Fixation_Duration"`
	NumOfFixations       float64 `json:"Num_of_Fixations"`
	MeanSaccadeDuration  float64 `json:"Mean_Saccade_Duration"`
	Bpm                  float64 `json:"Bpm"`
	RereadFrequency      float64 `json:"Reread_Frequency"`
	EnvFixationRatio     float64 `json:"Env_Fixation_Ratio"`
	ClickCount           float64 `json:"Click_Count"`
}

// Map returns the features keyed by their canonical names, the shape the
// classifier bridge reconciles against the persisted feature list.
func (f WindowFeatures) Map() map[string]float64 {
	return map[string]float64{
		KeyMeanFixationDuration: f.MeanFixationDuration,
		KeyNumOfFixations:       f.NumOfFixations,
		KeyMeanSaccadeDuration:  f.MeanSaccadeDuration,
		KeyBpm:                  f.Bpm,
		KeyRereadFrequency:      f.RereadFrequency,
		KeyEnvFixationRatio:     f.EnvFixationRatio,
		KeyClickCount:           f.ClickCount,
	}
}
