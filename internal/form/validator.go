package form

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-api/internal/catalog"
	"github.com/jwalitptl/clinic-api/internal/model"
)

// User-visible messages, one per rule.
const (
	MsgNameRequired      = "Nome é obrigatório"
	MsgSpecialtyRequired = "Especialidade é obrigatória"
	MsgPriceRequired     = "Preço da consulta é obrigatório"
	MsgFromTimeRequired  = "Horário de início é obrigatório"
	MsgToTimeRequired    = "Horário de término é obrigatório"
	MsgTimeOrder         = "O horario de inicio nao pode ser anterior ao horario de termino"
	MsgInvalidSpecialty  = "Especialidade inválida"
	MsgInvalidWeekday    = "Dia da semana inválido"
)

const (
	tagNotBlank  = "notblank"
	tagFinite    = "finite"
	tagTimeOrder = "timeorder"
	tagSpecialty = "specialty"
	tagWeekday   = "weekday"
)

// message returns the text shown next to field when rule tag fails.
func message(field, tag string) (string, bool) {
	switch field + "." + tag {
	case model.FieldName + "." + tagNotBlank:
		return MsgNameRequired, true
	case model.FieldSpecialty + "." + tagNotBlank:
		return MsgSpecialtyRequired, true
	case model.FieldSpecialty + "." + tagSpecialty:
		return MsgInvalidSpecialty, true
	case model.FieldAppointmentPrice + ".min", model.FieldAppointmentPrice + "." + tagFinite:
		return MsgPriceRequired, true
	case model.FieldAvailableFromTime + ".required":
		return MsgFromTimeRequired, true
	case model.FieldAvailableToTime + ".required":
		return MsgToTimeRequired, true
	case model.FieldAvailableToTime + "." + tagTimeOrder:
		return MsgTimeOrder, true
	case model.FieldAvailableFromWeekDay + "." + tagWeekday, model.FieldAvailableToWeekDay + "." + tagWeekday:
		return MsgInvalidWeekday, true
	}
	return "", false
}

type Option func(*Validator)

// WithStrictEnumerations additionally checks specialty and weekday codes
// against the catalog. Off by default.
func WithStrictEnumerations(enabled bool) Option {
	return func(v *Validator) {
		v.strict = enabled
	}
}

// Validator checks DoctorUpsertInput values. It holds no per-call state and
// is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	strict   bool
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := validate.RegisterValidation(tagNotBlank, notBlank); err != nil {
		panic(err)
	}
	validate.RegisterStructValidation(v.validateDoctor, model.DoctorUpsertInput{})

	v.validate = validate
	return v
}

func (v *Validator) Strict() bool {
	return v.strict
}

// Validate returns the normalized input and every rule it breaks. All field
// rules run even when an earlier one fails; the report is empty on success.
func (v *Validator) Validate(in model.DoctorUpsertInput) (model.DoctorUpsertInput, Report) {
	out := normalize(in)

	var report Report
	err := v.validate.Struct(out)
	if err == nil {
		return out, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable when Struct is handed a non-struct value.
		return out, report.add(model.FieldName, err.Error())
	}
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := message(field, fe.Tag())
		if !ok {
			msg = fe.Error()
		}
		report = report.add(field, msg)
	}
	return out, report.sorted()
}

func (v *Validator) validateDoctor(sl validator.StructLevel) {
	in := sl.Current().Interface().(model.DoctorUpsertInput)

	// min=1 lets +Inf through.
	if !catalog.IsFinite(in.AppointmentPrice) {
		sl.ReportError(in.AppointmentPrice, model.FieldAppointmentPrice, "AppointmentPrice", tagFinite, "")
	}

	if in.AvailableFromTime != "" && in.AvailableToTime != "" && !timeOrdered(in.AvailableFromTime, in.AvailableToTime) {
		sl.ReportError(in.AvailableToTime, model.FieldAvailableToTime, "AvailableToTime", tagTimeOrder, "")
	}

	if !v.strict {
		return
	}
	if in.Specialty != "" && !catalog.IsSpecialty(in.Specialty) {
		sl.ReportError(in.Specialty, model.FieldSpecialty, "Specialty", tagSpecialty, "")
	}
	if !catalog.IsWeekday(in.AvailableFromWeekDay) {
		sl.ReportError(in.AvailableFromWeekDay, model.FieldAvailableFromWeekDay, "AvailableFromWeekDay", tagWeekday, "")
	}
	if !catalog.IsWeekday(in.AvailableToWeekDay) {
		sl.ReportError(in.AvailableToWeekDay, model.FieldAvailableToWeekDay, "AvailableToWeekDay", tagWeekday, "")
	}
}

// timeOrdered compares slot codes as integers. A code made only of
// whitespace counts as slot 0; other codes that are not integers cannot be
// ordered and fail.
func timeOrdered(from, to string) bool {
	f, ok := slotIndex(from)
	if !ok {
		return false
	}
	t, ok := slotIndex(to)
	if !ok {
		return false
	}
	return f < t
}

func slotIndex(code string) (int, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, true
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return n, true
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func normalize(in model.DoctorUpsertInput) model.DoctorUpsertInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)
	return in
}
