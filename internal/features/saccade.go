package features

// MeanSaccadeDuration returns the mean time spent between consecutive
// fixations, taking each gap as the next fixation's start minus the previous
// one's end. Only strictly positive gaps contribute; a zero or negative gap
// is silently skipped. A window with fewer than two fixations has no saccades
// and yields 0.
func MeanSaccadeDuration(fixations []Fixation) float64 {
	if len(fixations) < 2 {
		return 0.0
	}

	var sum float64
	var count int
	for i := 1; i < len(fixations); i++ {
		gap := fixations[i].Start - fixations[i-1].End
		if gap > 0 {
			sum += gap
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
