package domain

import "time"

// BuildInfo records the outcome of the last successful run of a pipeline.
type BuildInfo struct {
	// Pipeline is the asset class that produced the outputs.
	Pipeline AssetClass `json:"pipeline"`

	// Mode is the mode the outputs were built in.
	Mode Mode `json:"mode"`

	// Files lists the written outputs relative to the project root.
	Files []string `json:"files"`

	// OutputHash is the digest over Files and their contents.
	OutputHash string `json:"output_hash"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`

	// Timestamp is when the run completed.
	Timestamp time.Time `json:"timestamp"`
}
