package primitives

import "time"

// Mark is a named point on the timeline. StartTime is in milliseconds since
// the owning store's origin.
type Mark struct {
	Name      string  `json:"name" yaml:"name"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	Detail    Detail  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Measure is a duration derived from two marks. It is never mutated after
// creation.
type Measure struct {
	Name      string  `json:"name" yaml:"name"`
	Start     string  `json:"start" yaml:"start"`
	End       string  `json:"end,omitempty" yaml:"end,omitempty"` // empty: measured to "now"
	Duration  float64 `json:"duration" yaml:"duration"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	// MissingStart reports that the start mark did not exist and Duration
	// fell back to zero.
	MissingStart bool `json:"missingStart,omitempty" yaml:"missingStart,omitempty"`
}

// Entry is a performance entry reported by the host platform, such as a
// resource timing record.
type Entry struct {
	Name      string  `json:"name" yaml:"name"`
	EntryType string  `json:"entryType" yaml:"entryType"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	Duration  float64 `json:"duration" yaml:"duration"`
	Detail    Detail  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Metric is a measure re-emitted with descriptive detail for telemetry.
type Metric struct {
	Name     string  `json:"name" yaml:"name"`
	Duration float64 `json:"duration" yaml:"duration"`
	Label    string  `json:"label,omitempty" yaml:"label,omitempty"`
	Detail   Detail  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Timeline is the serializable snapshot of one generation's marks and measures.
type Timeline struct {
	Generation string    `json:"generation" yaml:"generation"`
	Origin     time.Time `json:"origin" yaml:"origin"`
	Marks      []Mark    `json:"marks" yaml:"marks"`
	Measures   []Measure `json:"measures" yaml:"measures"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}
