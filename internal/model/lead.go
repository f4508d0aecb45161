package model

// Source identifies where a lead was first observed.
type Source string

const (
	// SourceCitation marks leads derived from bibliographic author records.
	SourceCitation Source = "citation"
	// SourceConference marks leads derived from conference-related search snippets.
	SourceConference Source = "conference"
)

// Default sentinels. Lead fields are never empty strings; anything the
// pipeline could not determine carries one of these instead.
const (
	Unknown         = "Unknown"
	TitleResearcher = "Researcher"
	TitleSpeaker    = "Speaker"
)

// RawLead is the canonical record produced by the identification stage.
// Name is always non-empty; every other field falls back to a sentinel.
type RawLead struct {
	Name                 string `json:"name"`
	Title                string `json:"title"`
	Company              string `json:"company"`
	Location             string `json:"location"`
	Source               Source `json:"source"`
	HasRecentPublication bool   `json:"has_recent_publication"`
}

// EnrichedLead is a RawLead with contact fields filled in. ContactEmail and
// ProfileURL are always populated: extracted from evidence when possible,
// otherwise synthesized deterministically from name and company.
type EnrichedLead struct {
	RawLead
	ContactEmail string `json:"contact_email"`
	ProfileURL   string `json:"professional_profile_url"`
}

// ScoredLead is an EnrichedLead with a bounded outreach-propensity score.
type ScoredLead struct {
	EnrichedLead
	Score int `json:"score"`
}
