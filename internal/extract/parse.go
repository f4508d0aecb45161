package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Contact is the structured shape requested from the model during
// enrichment. Every field may be null.
type Contact struct {
	LinkedIn *string `json:"linkedin"`
	Email    *string `json:"email"`
	Location *string `json:"location"`
}

var intPattern = regexp.MustCompile(`\d+`)

// ParseNameList parses a JSON array of person names from model output,
// tolerating surrounding prose. Empty entries are dropped.
func ParseNameList(text string) ([]string, error) {
	cleaned := sliceBetween(text, '[', ']')
	if cleaned == "" {
		return nil, eris.New("extract: no JSON array in response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, eris.Wrap(err, "extract: parse name list")
	}

	names := make([]string, 0, len(raw))
	for _, n := range raw {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// ParseContact parses the enrichment contact object from model output,
// tolerating surrounding prose. Null and missing fields stay nil.
func ParseContact(text string) (*Contact, error) {
	cleaned := sliceBetween(text, '{', '}')
	if cleaned == "" {
		return nil, eris.New("extract: no JSON object in response")
	}

	var c Contact
	if err := json.Unmarshal([]byte(cleaned), &c); err != nil {
		return nil, eris.Wrap(err, "extract: parse contact")
	}
	return &c, nil
}

// ParseFirstInt returns the first decimal integer appearing in the text.
func ParseFirstInt(text string) (int, error) {
	match := intPattern.FindString(text)
	if match == "" {
		return 0, eris.New("extract: no integer in response")
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, eris.Wrap(err, "extract: parse integer")
	}
	return n, nil
}

// sliceBetween returns the substring from the first opening delimiter to
// the last closing delimiter, or "" when no balanced pair exists.
func sliceBetween(text string, opening, closing byte) string {
	start := strings.IndexByte(text, opening)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
