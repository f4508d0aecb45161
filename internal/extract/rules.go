package extract

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/vantage-bio/prospect-cli/internal/model"
)

// Rules holds the keyword sets and weights for the heuristic score. The
// score is additive: baseline + one bonus per matched dimension, clamped
// to [0, 100].
type Rules struct {
	RoleKeywords    []string `yaml:"role_keywords"`
	FundingKeywords []string `yaml:"funding_keywords"`
	HubLocations    []string `yaml:"hub_locations"`

	RoleWeight        int `yaml:"role_weight"`
	FundingWeight     int `yaml:"funding_weight"`
	BaselineWeight    int `yaml:"baseline_weight"`
	HubWeight         int `yaml:"hub_weight"`
	PublicationWeight int `yaml:"publication_weight"`
}

// DefaultRules returns the built-in rule set tuned for the in-vitro
// toxicology market.
func DefaultRules() *Rules {
	return &Rules{
		RoleKeywords:      []string{"toxicology", "safety", "hepatic", "3d", "preclinical", "director", "head"},
		FundingKeywords:   []string{"series", "raised"},
		HubLocations:      []string{"boston", "cambridge", "san francisco", "basel", "london"},
		RoleWeight:        30,
		FundingWeight:     20,
		BaselineWeight:    15,
		HubWeight:         10,
		PublicationWeight: 40,
	}
}

// LoadRules reads rule overrides from a YAML file on top of the defaults.
// Keys absent from the file keep their default values.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read rules %s", path)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, eris.Wrap(err, "extract: parse rules")
	}
	return rules, nil
}

// Score computes the deterministic heuristic score for one lead. Pure:
// identical inputs always produce the identical integer.
func (r *Rules) Score(title, location string, fundingSnippets []model.Snippet, hasRecentPublication bool) int {
	score := r.BaselineWeight

	lowerTitle := strings.ToLower(title)
	for _, kw := range r.RoleKeywords {
		if strings.Contains(lowerTitle, kw) {
			score += r.RoleWeight
			break
		}
	}

	if snippetsContainAny(fundingSnippets, r.FundingKeywords) {
		score += r.FundingWeight
	}

	lowerLocation := strings.ToLower(location)
	for _, hub := range r.HubLocations {
		if strings.Contains(lowerLocation, hub) {
			score += r.HubWeight
			break
		}
	}

	if hasRecentPublication {
		score += r.PublicationWeight
	}

	return ClampScore(score)
}

func snippetsContainAny(snippets []model.Snippet, keywords []string) bool {
	for _, sn := range snippets {
		body := strings.ToLower(sn.Body)
		for _, kw := range keywords {
			if strings.Contains(body, kw) {
				return true
			}
		}
	}
	return false
}
