package utils

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// SanitizeString strips every HTML element from user supplied free text.
func SanitizeString(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})

	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
