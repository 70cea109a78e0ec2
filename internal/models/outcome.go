package models

import "time"

// Classification sources reported by the journey endpoint.
const (
	SourceOpenAI   = "openai"
	SourceDummy    = "dummy"
	SourceFallback = "fallback"
)

// ClassificationOutcome is an aggregate count of keywords assigned to a stage
// by a given source. No keyword text is stored.
type ClassificationOutcome struct {
	Source     string
	Stage      string
	Count      int64
	LastSeenAt time.Time
}

// ClassificationRun aggregates classification requests per source.
type ClassificationRun struct {
	Source    string
	Runs      int64
	Keywords  int64
	Fallbacks int64
	LastRunAt time.Time
}
