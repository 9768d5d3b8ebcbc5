// Package validate runs declarative per-field rule chains. Each rule
// returns a result instead of panicking or aborting the request; the
// runner stops a field's chain on its first failure and aggregates
// failures across fields into a single ValidationFailed error.
package validate

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode"

	"github.com/ghislainnkundayezu/notes-app-api/internal/apperr"
)

// Func is a single validator unit. It returns nil on success. Returning
// an *apperr.Error with a non-validation kind (NotFound, Unauthorized,
// InvalidIdentifier, ...) aborts the whole run with that error so
// ownership checks keep their own status; any other error is recorded
// as this field's failure message.
type Func func(ctx context.Context, value string) error

type rule struct {
	name  string
	check Func
}

// Field is an ordered rule chain for one named input.
type Field struct {
	name     string
	value    string
	optional bool
	rules    []rule
}

// NewField starts a chain for the given input name and raw value.
func NewField(name, value string) *Field {
	return &Field{name: name, value: value}
}

// Optional skips the whole chain when the trimmed value is empty.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// Required fails with message when the trimmed value is empty.
func (f *Field) Required(message string) *Field {
	return f.add("required", func(_ context.Context, v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New(message)
		}
		return nil
	})
}

// MinLen fails with message when the trimmed value is shorter than n.
func (f *Field) MinLen(n int, message string) *Field {
	return f.add("minlen", func(_ context.Context, v string) error {
		if len([]rune(strings.TrimSpace(v))) < n {
			return errors.New(message)
		}
		return nil
	})
}

// Alphanumeric fails with message unless the trimmed value is letters
// and digits only.
func (f *Field) Alphanumeric(message string) *Field {
	return f.add("alphanumeric", func(_ context.Context, v string) error {
		v = strings.TrimSpace(v)
		if v == "" {
			return errors.New(message)
		}
		for _, r := range v {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return errors.New(message)
			}
		}
		return nil
	})
}

// Email fails with message unless the value parses as an address.
func (f *Field) Email(message string) *Field {
	return f.add("email", func(_ context.Context, v string) error {
		if _, err := mail.ParseAddress(strings.TrimSpace(v)); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

// Custom appends a named predicate, typically an ownership or
// uniqueness check that hits the store.
func (f *Field) Custom(name string, fn Func) *Field {
	return f.add(name, fn)
}

func (f *Field) add(name string, fn Func) *Field {
	f.rules = append(f.rules, rule{name: name, check: fn})
	return f
}

// Run executes every field's chain in declared order. A field's chain
// stops at its first failure so later rules never see known-bad input
// (an ownership lookup is never attempted on a malformed id). Domain
// errors from custom predicates propagate unchanged; format failures
// are collected and reported together as one ValidationFailed.
func Run(ctx context.Context, fields ...*Field) error {
	var failures []apperr.FieldError
	for _, f := range fields {
		if f.optional && strings.TrimSpace(f.value) == "" {
			continue
		}
		for _, r := range f.rules {
			err := r.check(ctx, f.value)
			if err == nil {
				continue
			}
			var ae *apperr.Error
			if errors.As(err, &ae) && ae.Kind != apperr.KindValidation {
				return ae
			}
			failures = append(failures, apperr.FieldError{Field: f.name, Message: err.Error()})
			break
		}
	}
	if len(failures) > 0 {
		return apperr.Validation(failures)
	}
	return nil
}
