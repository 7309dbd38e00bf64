package features

import (
	"fmt"

	"attune/internal/models"
)

// RereadFrequency counts how often the gaze returns to an AOI it has already
// visited. The seen set only grows, so every later encounter of a known AOI
// counts; re-reads are cumulative, not event-paired. Samples outside any AOI
// are skipped entirely.
func RereadFrequency(samples []models.GazeSample) int {
	if len(samples) < 2 {
		return 0
	}

	seen := make(map[string]bool)
	count := 0
	for _, s := range samples {
		aoi := aoiOrNone(s.AOI)
		if aoi == models.AOINone {
			continue
		}
		if seen[aoi] {
			count++
		} else {
			seen[aoi] = true
		}
	}
	return count
}

// EnvFixationRatio is the fraction of fixations that landed outside both the
// supplied content AOIs and the NONE sentinel, in [0,1]. An empty fixation
// list is reported as 0, perfectly on-content.
//
// contentAOIs must describe the window's actual content layout; the ratio is
// meaningless for arbitrary material otherwise. DefaultContentAOIs exists only
// as a fallback for unknown content.
func EnvFixationRatio(fixations []Fixation, contentAOIs []string) float64 {
	if len(fixations) == 0 {
		return 0.0
	}

	content := make(map[string]bool, len(contentAOIs))
	for _, aoi := range contentAOIs {
		content[aoi] = true
	}

	env := 0
	for _, f := range fixations {
		if f.AOI != models.AOINone && !content[f.AOI] {
			env++
		}
	}
	return float64(env) / float64(len(fixations))
}

// DefaultContentAOIs guesses the study's paragraph naming scheme, p1 through
// p9. A discouraged convenience; callers that know the content layout must
// pass it explicitly.
func DefaultContentAOIs() []string {
	aois := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		aois = append(aois, fmt.Sprintf("p%d", i))
	}
	return aois
}
