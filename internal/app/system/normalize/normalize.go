// Package normalize provides canonical forms for user-supplied values
// before they are validated or sent to the ERP API.
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Code trims surrounding whitespace and lowercases a select-list code
// (industry, state, currency, language, time zone).
func Code(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
