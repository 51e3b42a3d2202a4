package form

import (
	"github.com/jwalitptl/clinic-api/internal/catalog"
	"github.com/jwalitptl/clinic-api/internal/model"
)

// Phase is the whole-form submission state.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseAccepted   Phase = "accepted"
	PhaseRejected   Phase = "rejected"
)

// FieldStatus is the per-field state shown by the form.
type FieldStatus string

const (
	FieldUntouched FieldStatus = "untouched"
	FieldTouched   FieldStatus = "touched"
	FieldValid     FieldStatus = "valid"
	FieldInvalid   FieldStatus = "invalid"
)

// Values holds the raw text of every form control.
type Values struct {
	Name                 string
	Specialty            string
	AppointmentPrice     string
	AvailableFromWeekDay string
	AvailableToWeekDay   string
	AvailableFromTime    string
	AvailableToTime      string
}

func (v Values) Get(field string) string {
	switch field {
	case model.FieldName:
		return v.Name
	case model.FieldSpecialty:
		return v.Specialty
	case model.FieldAppointmentPrice:
		return v.AppointmentPrice
	case model.FieldAvailableFromWeekDay:
		return v.AvailableFromWeekDay
	case model.FieldAvailableToWeekDay:
		return v.AvailableToWeekDay
	case model.FieldAvailableFromTime:
		return v.AvailableFromTime
	case model.FieldAvailableToTime:
		return v.AvailableToTime
	}
	return ""
}

// With returns a copy of v with field set. Unknown fields are ignored.
func (v Values) With(field, value string) Values {
	switch field {
	case model.FieldName:
		v.Name = value
	case model.FieldSpecialty:
		v.Specialty = value
	case model.FieldAppointmentPrice:
		v.AppointmentPrice = value
	case model.FieldAvailableFromWeekDay:
		v.AvailableFromWeekDay = value
	case model.FieldAvailableToWeekDay:
		v.AvailableToWeekDay = value
	case model.FieldAvailableFromTime:
		v.AvailableFromTime = value
	case model.FieldAvailableToTime:
		v.AvailableToTime = value
	}
	return v
}

// Input converts the raw values. A price that does not parse becomes 0 and
// is reported by the price rule.
func (v Values) Input() model.DoctorUpsertInput {
	price, err := catalog.ParsePrice(v.AppointmentPrice)
	if err != nil {
		price = 0
	}
	return model.DoctorUpsertInput{
		Name:                 v.Name,
		Specialty:            v.Specialty,
		AppointmentPrice:     price,
		AvailableFromWeekDay: v.AvailableFromWeekDay,
		AvailableToWeekDay:   v.AvailableToWeekDay,
		AvailableFromTime:    v.AvailableFromTime,
		AvailableToTime:      v.AvailableToTime,
	}
}

func ValuesFromInput(in model.DoctorUpsertInput) Values {
	return Values{
		Name:                 in.Name,
		Specialty:            in.Specialty,
		AppointmentPrice:     catalog.FormatPrice(in.AppointmentPrice),
		AvailableFromWeekDay: in.AvailableFromWeekDay,
		AvailableToWeekDay:   in.AvailableToWeekDay,
		AvailableFromTime:    in.AvailableFromTime,
		AvailableToTime:      in.AvailableToTime,
	}
}

// State is an immutable snapshot of the doctor form. Use Form.Update to
// derive the next state.
type State struct {
	Values    Values
	Errors    Report
	Phase     Phase
	Editing   bool
	Submitted bool
	// FormError is set when a valid submission failed downstream.
	FormError string

	touched map[string]bool
}

// NewState returns an empty create form with the default weekday window.
func NewState() State {
	return State{
		Values: Values{
			AvailableFromWeekDay: catalog.DefaultFromWeekDay,
			AvailableToWeekDay:   catalog.DefaultToWeekDay,
		},
		Phase: PhaseEditing,
	}
}

// EditState returns a form pre-filled with an existing doctor.
func EditState(in model.DoctorUpsertInput) State {
	s := NewState()
	s.Values = ValuesFromInput(in)
	s.Editing = true
	return s
}

func (s State) Touched(field string) bool {
	return s.touched[field]
}

func (s State) FieldStatus(field string) FieldStatus {
	switch {
	case !s.touched[field]:
		return FieldUntouched
	case !s.Submitted:
		return FieldTouched
	case s.Errors.Has(field):
		return FieldInvalid
	default:
		return FieldValid
	}
}

// Open reports whether the form still accepts input.
func (s State) Open() bool {
	return s.Phase != PhaseAccepted
}

func (s State) withTouched(fields ...string) State {
	touched := make(map[string]bool, len(s.touched)+len(fields))
	for k, v := range s.touched {
		touched[k] = v
	}
	for _, f := range fields {
		touched[f] = true
	}
	s.touched = touched
	return s
}

// Msg is a state transition request.
type Msg interface {
	isMsg()
}

type FieldChanged struct {
	Field string
	Value string
}

type FieldBlurred struct {
	Field string
}

type SubmitRequested struct{}

// SubmitCompleted reports the continuation result of a valid submission.
type SubmitCompleted struct {
	Err error
}

func (FieldChanged) isMsg()    {}
func (FieldBlurred) isMsg()    {}
func (SubmitRequested) isMsg() {}
func (SubmitCompleted) isMsg() {}

// Form applies transitions using a validator.
type Form struct {
	validator *Validator
}

func NewForm(v *Validator) *Form {
	return &Form{validator: v}
}

// Update returns the state that follows msg. s is never modified.
func (f *Form) Update(s State, msg Msg) State {
	switch m := msg.(type) {
	case FieldChanged:
		if s.Phase == PhaseSubmitting {
			return s
		}
		s = s.withTouched(m.Field)
		s.Values = s.Values.With(m.Field, m.Value)
		s.Phase = PhaseEditing
		s.FormError = ""
		if s.Submitted {
			_, s.Errors = f.validator.Validate(s.Values.Input())
		}
		return s

	case FieldBlurred:
		if s.Phase == PhaseSubmitting {
			return s
		}
		s = s.withTouched(m.Field)
		if s.Phase == PhaseRejected {
			s.Phase = PhaseEditing
		}
		return s

	case SubmitRequested:
		if s.Phase == PhaseSubmitting {
			return s
		}
		s = s.withTouched(model.DoctorFields...)
		s.Submitted = true
		s.FormError = ""
		_, s.Errors = f.validator.Validate(s.Values.Input())
		if !s.Errors.Empty() {
			s.Phase = PhaseRejected
			return s
		}
		s.Phase = PhaseSubmitting
		return s

	case SubmitCompleted:
		if s.Phase != PhaseSubmitting {
			return s
		}
		if m.Err != nil {
			s.Phase = PhaseEditing
			s.FormError = m.Err.Error()
			return s
		}
		s.Phase = PhaseAccepted
		return s
	}
	return s
}
