// Package inputval validates user-submitted form input before it is sent
// to the ERP API. Validation failures are field-level and human readable;
// they are rendered next to the offending field and never reach the
// network.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// MinPasswordLength is the minimum accepted password length, matching the
// ERP API's account policy.
const MinPasswordLength = 8

// IsValidEmail reports whether s is a structurally valid email address.
//
// This is intentionally stricter than a permissive "contains @" check:
// it rejects leading/trailing/consecutive dots, embedded whitespace, and
// display-name forms ("Name <user@host>"), while still accepting
// single-label domains (user@localhost) which are useful in dev setups.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if !dotAtomOK(local) || !dotAtomOK(domain) {
		return false
	}
	return true
}

// dotAtomOK rejects empty parts, leading/trailing dots, and consecutive dots.
func dotAtomOK(part string) bool {
	if part == "" {
		return false
	}
	if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
		return false
	}
	return !strings.Contains(part, "..")
}

// IsValidPassword reports whether the password meets the minimum length.
func IsValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the validation errors for one input struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or "" when validation passed.
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All returns every error message joined with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for a named field, or "" when that field passed.
func (r *Result) Field(name string) string {
	for _, e := range r.Errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

// Validate runs the rules declared in `validate` struct tags against the
// string fields of input. Supported rules: required, min=N, max=N, email,
// password. The `label` tag supplies the display name used in messages.
//
//	type loginInput struct {
//	    Email    string `validate:"required,email" label:"Email"`
//	    Password string `validate:"required,password" label:"Password"`
//	}
//
//	if result := inputval.Validate(input); result.HasErrors() {
//	    // re-render the form with result.First() / result.Field(...)
//	}
func Validate(input any) *Result {
	res := &Result{}

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		rules := field.Tag.Get("validate")
		if rules == "" || field.Type.Kind() != reflect.String {
			continue
		}

		label := field.Tag.Get("label")
		if label == "" {
			label = field.Name
		}
		value := v.Field(i).String()

		for _, rule := range strings.Split(rules, ",") {
			if msg := applyRule(rule, label, value); msg != "" {
				res.Errors = append(res.Errors, FieldError{Field: field.Name, Message: msg})
				break // first failing rule per field
			}
		}
	}

	return res
}

func applyRule(rule, label, value string) string {
	name, arg, _ := strings.Cut(rule, "=")

	switch name {
	case "required":
		if strings.TrimSpace(value) == "" {
			return label + " is required."
		}
	case "min":
		n, err := strconv.Atoi(arg)
		if err == nil && value != "" && len(value) < n {
			return fmt.Sprintf("%s must be at least %d characters.", label, n)
		}
	case "max":
		n, err := strconv.Atoi(arg)
		if err == nil && len(value) > n {
			return fmt.Sprintf("%s must be at most %d characters.", label, n)
		}
	case "email":
		if value != "" && !IsValidEmail(value) {
			return "A valid email address is required."
		}
	case "password":
		if value != "" && !IsValidPassword(value) {
			return fmt.Sprintf("%s must be at least %d characters.", label, MinPasswordLength)
		}
	}
	return ""
}
