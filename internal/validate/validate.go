// Package validate implements the field-level validators the request
// schemas are composed from.
package validate

import (
	"fmt"
	"regexp"
)

// Errors maps a field name to the messages for that field. It is the
// shape clients receive under details.fieldErrors.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Ok() bool {
	return len(e) == 0
}

// Details returns the wire form of a validation failure.
func (e Errors) Details() map[string]any {
	return map[string]any{"fieldErrors": e}
}

// Rule checks a single string value and returns a message, or "" when
// the value passes.
type Rule func(value string) string

// Check runs each rule against value, recording failures under field.
func (e Errors) Check(field, value string, rules ...Rule) {
	for _, r := range rules {
		if msg := r(value); msg != "" {
			e.Add(field, msg)
		}
	}
}

// Required rejects empty strings.
func Required(value string) string {
	if value == "" {
		return "is required"
	}
	return ""
}

// MinLen rejects values shorter than n bytes.
func MinLen(n int) Rule {
	return func(value string) string {
		if len(value) < n {
			return fmt.Sprintf("must be at least %d characters", n)
		}
		return ""
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email rejects values that do not look like an email address.
func Email(value string) string {
	if !emailPattern.MatchString(value) {
		return "must be a valid email"
	}
	return ""
}
