package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
)

// DoctorHandler processes one forwarded doctor submission.
type DoctorHandler func(ctx context.Context, event model.DoctorUpsertedEvent) error

// envelope mirrors messaging.Message with a typed payload.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DoctorConsumer reads DoctorUpsertedEvents published by the API and hands
// them to a handler. Malformed or foreign messages are logged and skipped.
type DoctorConsumer struct {
	broker  messaging.Broker
	channel string
	handle  DoctorHandler
	logger  *logger.Logger
}

func NewDoctorConsumer(broker messaging.Broker, channel string, handle DoctorHandler, log *logger.Logger) *DoctorConsumer {
	if log == nil {
		log = logger.Nop()
	}
	return &DoctorConsumer{
		broker:  broker,
		channel: channel,
		handle:  handle,
		logger:  log.WithFields(map[string]interface{}{"channel": channel}),
	}
}

// Run blocks until ctx is done or the subscription ends.
func (c *DoctorConsumer) Run(ctx context.Context) error {
	messages, err := c.broker.Subscribe(ctx, c.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	c.logger.Info("Doctor consumer started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Doctor consumer shutting down")
			return nil
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			c.process(ctx, raw)
		}
	}
}

func (c *DoctorConsumer) process(ctx context.Context, raw []byte) {
	var msg envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.logger.Error(err, "Skipping malformed message")
		return
	}
	if msg.Type != model.EventDoctorUpserted {
		c.logger.Warn("Skipping unexpected message type", "type", msg.Type)
		return
	}

	var event model.DoctorUpsertedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error(err, "Skipping malformed doctor event")
		return
	}

	if err := c.handle(ctx, event); err != nil {
		c.logger.Error(err, "Failed to handle doctor event",
			"event_id", event.ID.String(),
			"request_id", event.RequestID,
		)
	}
}

// LogDoctor is the default handler. Doctor persistence lives outside this
// service, so accepted doctors are only recorded in the log.
func LogDoctor(log *logger.Logger) DoctorHandler {
	return func(_ context.Context, event model.DoctorUpsertedEvent) error {
		log.Info("Doctor upserted",
			"event_id", event.ID.String(),
			"request_id", event.RequestID,
			"name", event.Doctor.Name,
			"specialty", event.Doctor.Specialty,
			"occurred_at", event.OccurredAt,
		)
		return nil
	}
}
