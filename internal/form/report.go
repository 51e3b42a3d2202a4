package form

import (
	"sort"
	"strings"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// FieldValidationError is a validation failure attached to one form field path.
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Report collects at most one error per field, in form display order.
// An empty report means the input was accepted.
type Report []FieldValidationError

func (r Report) Empty() bool {
	return len(r) == 0
}

// Get returns the message attached to field, if any.
func (r Report) Get(field string) (string, bool) {
	for _, e := range r {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

func (r Report) Has(field string) bool {
	_, ok := r.Get(field)
	return ok
}

// Map returns the report keyed by field path.
func (r Report) Map() map[string]string {
	if len(r) == 0 {
		return nil
	}
	m := make(map[string]string, len(r))
	for _, e := range r {
		m[e.Field] = e.Message
	}
	return m
}

func (r Report) Fields() []string {
	fields := make([]string, 0, len(r))
	for _, e := range r {
		fields = append(fields, e.Field)
	}
	return fields
}

func (r Report) String() string {
	parts := make([]string, 0, len(r))
	for _, e := range r {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// add keeps the first message recorded for a field.
func (r Report) add(field, message string) Report {
	if r.Has(field) {
		return r
	}
	return append(r, FieldValidationError{Field: field, Message: message})
}

func (r Report) sorted() Report {
	sort.SliceStable(r, func(i, j int) bool {
		return fieldIndex(r[i].Field) < fieldIndex(r[j].Field)
	})
	return r
}

func fieldIndex(field string) int {
	for i, f := range model.DoctorFields {
		if f == field {
			return i
		}
	}
	return len(model.DoctorFields)
}
