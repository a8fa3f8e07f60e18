// Package htmlsanitize strips markup from user-supplied form values.
//
// Free-text fields (names, street addresses, tax numbers) are forwarded
// verbatim to the ERP API and echoed back into re-rendered forms, so any
// embedded markup is removed up front rather than trusted downstream.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Plain removes all HTML elements and attributes from s and returns the
// remaining text with entities decoded, trimmed of surrounding whitespace.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
