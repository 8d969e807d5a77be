package validator

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictSanitizer strips markup from submitted text and escapes the rest so
// parameters are safe to show in HTML error lists.
func StrictSanitizer(raw string) string {
	if raw == "" {
		return ""
	}
	return parameterSanitizer().Sanitize(raw)
}

func parameterSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
