package features

import (
	"attune/internal/models"
)

// Thresholds carries the fixation detector's tuning knobs.
type Thresholds struct {
	Distance float64 // px
	Duration float64 // ms
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Distance: DefaultDistanceThreshold,
		Duration: DefaultDurationThreshold,
	}
}

// Extract reduces one window's raw streams to the classifier's feature set.
// Absence of any stream degrades to zero-valued features for that stream and
// never blocks the others; the result is always fully populated and finite.
// The function is pure, so re-running it on the same window is bit-identical.
func Extract(w *models.Window, th Thresholds, contentAOIs []string) models.WindowFeatures {
	var out models.WindowFeatures

	fixations := DetectFixations(w.GazeLog, th.Distance, th.Duration)
	if len(fixations) > 0 {
		var total float64
		for _, f := range fixations {
			total += f.Duration
		}
		out.MeanFixationDuration = total / float64(len(fixations))
		out.NumOfFixations = float64(len(fixations))
		out.MeanSaccadeDuration = MeanSaccadeDuration(fixations)
	}

	out.RereadFrequency = float64(RereadFrequency(w.GazeLog))
	out.EnvFixationRatio = EnvFixationRatio(fixations, contentAOIs)

	clicks := 0
	for _, ev := range w.Interactions {
		if ev.Type == models.InteractionClick {
			clicks++
		}
	}
	out.ClickCount = float64(clicks)

	if len(w.HeartRate) > 0 {
		var sum float64
		for _, hr := range w.HeartRate {
			sum += hr.Bpm
		}
		out.Bpm = sum / float64(len(w.HeartRate))
	}

	return out
}
