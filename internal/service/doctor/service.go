package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/form"
	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
)

type DoctorServicer interface {
	Submit(ctx context.Context, in model.DoctorUpsertInput) (model.DoctorUpsertInput, error)
	Validator() *form.Validator
}

// Service submits doctor forms through the gate and hands accepted values
// to the configured continuation.
type Service struct {
	gate *form.Gate
	next form.Continuation
}

func NewService(gate *form.Gate, next form.Continuation) *Service {
	return &Service{gate: gate, next: next}
}

func (s *Service) Validator() *form.Validator {
	return s.gate.Validator()
}

// Submit returns the validated value. A rejected form yields a validation
// AppError whose Fields hold one message per invalid field.
func (s *Service) Submit(ctx context.Context, in model.DoctorUpsertInput) (model.DoctorUpsertInput, error) {
	out, report, err := s.gate.Submit(ctx, in, s.next)
	if err != nil {
		return out, fmt.Errorf("failed to forward doctor: %w", err)
	}
	if !report.Empty() {
		return out, apperrors.NewValidation(report.Map())
	}
	return out, nil
}

// LogContinuation logs accepted forms and forwards nothing.
func LogContinuation(log *logger.Logger) form.Continuation {
	return func(ctx context.Context, in model.DoctorUpsertInput) error {
		log.Info("Doctor form accepted",
			"request_id", logger.RequestID(ctx),
			"name", in.Name,
			"specialty", in.Specialty,
			"appointment_price", in.AppointmentPrice,
			"available_from_week_day", in.AvailableFromWeekDay,
			"available_to_week_day", in.AvailableToWeekDay,
			"available_from_time", in.AvailableFromTime,
			"available_to_time", in.AvailableToTime,
		)
		return nil
	}
}

// BrokerContinuation publishes a DoctorUpsertedEvent on channel.
func BrokerContinuation(broker messaging.Broker, channel string) form.Continuation {
	return func(ctx context.Context, in model.DoctorUpsertInput) error {
		event := model.DoctorUpsertedEvent{
			ID:         uuid.New(),
			RequestID:  logger.RequestID(ctx),
			Doctor:     in,
			OccurredAt: time.Now().UTC(),
		}
		return broker.Publish(ctx, channel, messaging.Message{
			Type:    model.EventDoctorUpserted,
			Payload: event,
		})
	}
}
