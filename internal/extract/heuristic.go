package extract

import (
	"regexp"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// namePattern matches two adjacent capitalized words, the shape of most
// western person names appearing in search snippets.
var namePattern = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

// ExtractNames pulls candidate person names from snippet bodies by pattern
// match, deduplicated in first-seen order and truncated to limit.
func ExtractNames(snippets []model.Snippet, limit int) []string {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, sn := range snippets {
		for _, m := range namePattern.FindAllString(sn.Body, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			names = append(names, m)
			if len(names) == limit {
				return names
			}
		}
	}
	return names
}

// ClampScore bounds a score to [0, 100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
