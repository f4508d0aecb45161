package model

import "time"

// StageCounts tallies how many leads each stage produced.
type StageCounts struct {
	Identified int `json:"identified"`
	Enriched   int `json:"enriched"`
	Scored     int `json:"scored"`
}

// RunSummary is the result of one full pipeline run.
type RunSummary struct {
	RunID          string       `json:"run_id"`
	StartedAt      time.Time    `json:"started_at"`
	DurationMS     int64        `json:"duration_ms"`
	Counts         StageCounts  `json:"counts"`
	QuotaExhausted bool         `json:"quota_exhausted"`
	Leads          []ScoredLead `json:"leads"`
}
