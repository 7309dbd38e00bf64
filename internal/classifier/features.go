package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Affective states as numbered in the persisted model. The engine never
// produces these itself; they come back from the classifier service.
const (
	StateFocusedInterest = 1
	StateConfusion       = 2
	StateFrustration     = 3
	StateSleepiness      = 4
)

// StateLabels maps state IDs to their human-readable names.
var StateLabels = map[int]string{
	StateFocusedInterest: "Focused Interest",
	StateConfusion:       "Confusion",
	StateFrustration:     "Frustration",
	StateSleepiness:      "Sleepiness",
}

// LabelFor returns the label for a state ID, or "Unknown" for anything
// outside the persisted label space.
func LabelFor(stateID int) string {
	if label, ok := StateLabels[stateID]; ok {
		return label
	}
	return "Unknown"
}

// InterventionNeeded reports whether the tutor should step in for this state.
// Confusion and Frustration warrant intervention; the others do not.
func InterventionNeeded(stateID int) bool {
	return stateID == StateConfusion || stateID == StateFrustration
}

// FeatureList is the ordered feature-name list the training pipeline persisted
// alongside the model. The serving model expects its inputs under exactly
// these names, in exactly this order.
type FeatureList struct {
	Names []string `json:"features"`
}

// LoadFeatureList reads and parses the persisted feature list.
func LoadFeatureList(path string) (*FeatureList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature list: %w", err)
	}

	var list FeatureList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature list: %w", err)
	}
	if len(list.Names) == 0 {
		return nil, fmt.Errorf("feature list %s names no features", path)
	}
	return &list, nil
}

// Reconcile maps an extracted feature mapping onto the persisted names.
// Matching is case-insensitive and any name absent from the input defaults
// to 0, so the result always covers the full list.
func (l *FeatureList) Reconcile(features map[string]float64) map[string]float64 {
	lowered := make(map[string]float64, len(features))
	for key, value := range features {
		lowered[strings.ToLower(key)] = value
	}

	out := make(map[string]float64, len(l.Names))
	for _, name := range l.Names {
		out[name] = lowered[strings.ToLower(name)]
	}
	return out
}
