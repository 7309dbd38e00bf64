package features

import (
	"math"

	"attune/internal/models"
)

// Default detector tuning, overridable from config.
const (
	DefaultDistanceThreshold = 50.0  // px
	DefaultDurationThreshold = 100.0 // ms
)

// Fixation is a contiguous run of gaze samples that stayed within the
// dispersion threshold of its running centroid on a single AOI for at least
// the duration threshold. Coordinates are the mean of the member samples.
type Fixation struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	AOI      string  `json:"aoi"`
}

// candidate accumulates a potential fixation during the scan.
type candidate struct {
	sumX, sumY float64
	count      int
	start, end float64
	aoi        string
}

func newCandidate(s models.GazeSample) candidate {
	return candidate{
		sumX:  s.X,
		sumY:  s.Y,
		count: 1,
		start: s.T,
		end:   s.T,
		aoi:   aoiOrNone(s.AOI),
	}
}

// centroid is the running mean of the accumulated samples. It drifts as
// members are added; dispersion is always measured against it, not against
// the first sample.
func (c *candidate) centroid() (float64, float64) {
	n := float64(c.count)
	return c.sumX / n, c.sumY / n
}

func (c *candidate) absorb(s models.GazeSample) {
	c.sumX += s.X
	c.sumY += s.Y
	c.count++
	c.end = s.T
}

// close evaluates the candidate against the duration gate. Candidates shorter
// than the threshold are discarded, never emitted.
func (c *candidate) close(durationThreshold float64) (Fixation, bool) {
	duration := c.end - c.start
	if duration < durationThreshold {
		return Fixation{}, false
	}
	cx, cy := c.centroid()
	return Fixation{
		X:        cx,
		Y:        cy,
		Start:    c.start,
		End:      c.end,
		Duration: duration,
		AOI:      c.aoi,
	}, true
}

// DetectFixations groups gaze samples into fixations using dispersion
// thresholding (I-DT) in a single left-to-right pass. A sample extends the
// open candidate when it lies within distanceThreshold pixels of the
// candidate's running centroid and shares its AOI; anything else closes the
// candidate and seeds a new one. A run of off-content ("NONE") samples can
// itself become a fixation.
//
// The function is total over well-formed input: empty input yields no
// fixations, a single sample never reaches the duration gate, and degenerate
// thresholds are not rejected.
func DetectFixations(samples []models.GazeSample, distanceThreshold, durationThreshold float64) []Fixation {
	if len(samples) == 0 {
		return nil
	}

	var fixations []Fixation
	current := newCandidate(samples[0])

	for _, s := range samples[1:] {
		cx, cy := current.centroid()
		dx, dy := s.X-cx, s.Y-cy
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist <= distanceThreshold && aoiOrNone(s.AOI) == current.aoi {
			current.absorb(s)
			continue
		}

		if f, ok := current.close(durationThreshold); ok {
			fixations = append(fixations, f)
		}
		current = newCandidate(s)
	}

	// The final open candidate gets the same duration test.
	if f, ok := current.close(durationThreshold); ok {
		fixations = append(fixations, f)
	}

	return fixations
}

func aoiOrNone(aoi string) string {
	if aoi == "" {
		return models.AOINone
	}
	return aoi
}
