package model

// Citation is a bibliographic record as delivered by a citation source.
type Citation struct {
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
}

// Author is a single author entry on a citation. Affiliation is the raw
// free-text affiliation string; it may be empty.
type Author struct {
	Given       string `json:"given"`
	Family      string `json:"family"`
	Affiliation string `json:"affiliation"`
}

// Snippet is one unit of free-text search evidence.
type Snippet struct {
	Body string `json:"body"`
}
