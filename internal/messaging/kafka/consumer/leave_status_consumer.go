package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-agency/internal/bootstrap"
	"go-agency/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var errMissingAgency = errors.New("leave status event has no agency_id")

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// CacheInvalidator drops cached role availability for an agency.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, agencyID string) error
}

func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader MessageReader,
	cache CacheInvalidator,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		if err := handleLeaveStatusMessage(ctx, msg, cache, audit); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) || errors.Is(err, errMissingAgency) {
				log.Error("drop malformed leave status event", zap.Error(err))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			log.Error("handle leave status event failed",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
		}
	}
}

func handleLeaveStatusMessage(
	ctx context.Context,
	msg kafkago.Message,
	cache CacheInvalidator,
	audit bootstrap.AuditLogger,
) error {
	var event events.LeaveStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}
	if event.AgencyID == "" {
		return errMissingAgency
	}

	// Only a final approval can change who is on leave today.
	if event.Status == "AGENCY_APPROVED" {
		if err := cache.Invalidate(ctx, event.AgencyID); err != nil {
			return err
		}
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "LEAVE_" + event.Status,
		Message: event.EventType,
		Meta: map[string]any{
			"leave_id":    event.LeaveID,
			"agency_id":   event.AgencyID,
			"employee_id": event.EmployeeID,
			"leave_type":  event.LeaveType,
			"from_status": event.FromStatus,
			"actor_id":    event.ActorID,
			"request_id":  event.RequestID,
		},
	})

	return nil
}
