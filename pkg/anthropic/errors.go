package anthropic

import (
	"errors"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
)

// IsQuotaExhausted returns true if the error indicates the account hit a
// rate limit or quota ceiling: an API error with HTTP 429 anywhere in the
// chain, or a message matching common quota/rate-limit patterns from
// wrapped transport errors.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	quotaPatterns := []string{
		"rate limit",
		"rate_limit",
		"quota",
		"too many requests",
		"429",
	}
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
