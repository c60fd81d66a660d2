// Package validation evaluates ordered rule lists against request input.
// Every rule runs; failures are collected in rule order.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"blog_backend/internal/shared/apperr"
)

// Rule pairs a predicate with the message reported when it does not hold.
type Rule[T any] struct {
	Field   string
	Check   func(T) bool
	Message string
}

// Rules is an ordered list of rules for one input type.
type Rules[T any] []Rule[T]

// Validate runs all rules against in and returns a validation error listing
// every failure, or nil when all rules pass.
func (rs Rules[T]) Validate(in T) error {
	var failed []apperr.FieldError
	for _, r := range rs {
		if !r.Check(in) {
			failed = append(failed, apperr.FieldError{Field: r.Field, Message: r.Message})
		}
	}
	if len(failed) == 0 {
		return nil
	}
	msgs := make([]string, len(failed))
	for i, f := range failed {
		msgs[i] = f.Message
	}
	return apperr.Validation(strings.Join(msgs, ", "), failed...)
}

var validate = validator.New()

// NotBlank reports whether s has any non-whitespace character.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// MinLength reports whether s has at least n characters.
func MinLength(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

// OneOf reports whether s equals one of allowed.
func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
