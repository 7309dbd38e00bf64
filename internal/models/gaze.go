package models

// AOINone marks a gaze sample that fell outside every tracked area of interest.
const AOINone = "NONE"

// InteractionClick is the interaction event type counted as a click.
const InteractionClick = "click"

// GazeSample is one raw gaze point reported by the client tracker. Timestamps
// are in milliseconds and non-decreasing within a window.
type GazeSample struct {
	T   float64 `json:"t"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	AOI string  `json:"aoi,omitempty"`
}

type InteractionEvent struct {
	T    float64 `json:"t"`
	Type string  `json:"type"`
}

type HeartRateSample struct {
	T   float64 `json:"t"`
	Bpm float64 `json:"bpm"`
}

// Window bundles the raw streams collected over one observation period.
// Any stream may be empty; the feature engine degrades to zero-valued
// features for whatever is missing.
type Window struct {
	WindowID     string             `json:"window_id"`
	SessionID    string             `json:"session_id,omitempty"`
	ContentID    string             `json:"content_id,omitempty"`
	GazeLog      []GazeSample       `json:"gaze_log"`
	Interactions []InteractionEvent `json:"interactions"`
	HeartRate    []HeartRateSample  `json:"heart_rate"`
}
