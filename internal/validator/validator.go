// Package validator provides a Validator type for accumulating field-level
// validation errors. Struct tag rules are evaluated by go-playground/validator
// and reported under the field's JSON name.
package validator

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// structRules is shared by every Validator; the underlying engine caches
// struct metadata and is safe for concurrent use.
var structRules = newStructRules()

func newStructRules() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report failures under the json tag name ("books_name") rather than
	// the Go field name ("Title").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
	order  []string
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if the Errors map contains no entries.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not overwritten, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
		v.order = append(v.order, key)
	}
}

// Check adds an error for key with message only when ok is false.
//
//	v.Check(len(title) > 0, "books_name", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// CheckStruct evaluates the `validate` tags on s. Each failing field is
// recorded under its JSON name, using messages[field] when present and the
// engine's own description otherwise.
func (v *Validator) CheckStruct(s any, messages map[string]string) {
	err := structRules.Struct(s)
	if err == nil {
		return
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.AddError("_", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		message, ok := messages[fe.Field()]
		if !ok {
			message = fe.Error()
		}
		v.AddError(fe.Field(), message)
	}
}

// First returns the earliest recorded failure. ok is false when the
// Validator is valid.
func (v *Validator) First() (key, message string, ok bool) {
	if len(v.order) == 0 {
		return "", "", false
	}
	key = v.order[0]
	return key, v.Errors[key], true
}

// In returns true if value is present in the list slice.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}
