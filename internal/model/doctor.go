package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor form field paths, in the order the form displays them.
const (
	FieldName                 = "name"
	FieldSpecialty            = "specialty"
	FieldAppointmentPrice     = "appointmentPrice"
	FieldAvailableFromWeekDay = "availableFromWeekDay"
	FieldAvailableToWeekDay   = "availableToWeekDay"
	FieldAvailableFromTime    = "availableFromTime"
	FieldAvailableToTime      = "availableToTime"
)

// DoctorFields lists every field path of DoctorUpsertInput in display order.
var DoctorFields = []string{
	FieldName,
	FieldSpecialty,
	FieldAppointmentPrice,
	FieldAvailableFromWeekDay,
	FieldAvailableToWeekDay,
	FieldAvailableFromTime,
	FieldAvailableToTime,
}

// DoctorUpsertInput is the payload of the create/edit doctor form. It is
// transient: this service validates and forwards it but never stores it.
//
// Weekday fields hold "0" (Sunday) to "6" (Saturday); time fields hold
// half-hour slot codes "0" (05:00) to "37" (23:30).
type DoctorUpsertInput struct {
	Name                 string  `json:"name" validate:"notblank"`
	Specialty            string  `json:"specialty" validate:"notblank"`
	AppointmentPrice     float64 `json:"appointmentPrice" validate:"min=1"`
	AvailableFromWeekDay string  `json:"availableFromWeekDay"`
	AvailableToWeekDay   string  `json:"availableToWeekDay"`
	AvailableFromTime    string  `json:"availableFromTime" validate:"required"`
	AvailableToTime      string  `json:"availableToTime" validate:"required"`
}

// DoctorUpsertedEvent is published when a validated doctor form is forwarded
// to the persistence collaborator.
type DoctorUpsertedEvent struct {
	ID         uuid.UUID         `json:"id"`
	RequestID  string            `json:"request_id,omitempty"`
	Doctor     DoctorUpsertInput `json:"doctor"`
	OccurredAt time.Time         `json:"occurred_at"`
}

const EventDoctorUpserted = "DOCTOR_UPSERTED"
