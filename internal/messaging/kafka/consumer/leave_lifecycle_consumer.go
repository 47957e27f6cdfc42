package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/events"
	"go-hris-leave/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveLifecycle writes one audit entry per leave lifecycle event until ctx ends.
// Undecodable messages are committed and skipped.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveRequestEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType == "" {
			log.Error("decode leave lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if commitErr := reader.CommitMessages(ctx, msg); commitErr != nil {
				log.Error("commit invalid leave lifecycle event failed", zap.Error(commitErr))
			}
			continue
		}

		auditCtx := contextutil.WithRequestID(ctx, event.RequestID)
		audit.Log(auditCtx, auditEntry(event))

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("leave lifecycle event audited",
			zap.String("event_type", event.EventType),
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("tenant_id", event.TenantID),
		)
	}
}

func auditEntry(event events.LeaveRequestEvent) bootstrap.AuditLog {
	var message string
	switch event.EventType {
	case events.LeaveRequestSubmitted:
		message = fmt.Sprintf("%s leave requested for %d day(s)", event.LeaveType, event.DurationDays)
	case events.LeaveRequestApproved:
		message = fmt.Sprintf("%s leave approved, %d day(s) debited", event.LeaveType, event.DurationDays)
	case events.LeaveRequestRejected:
		message = fmt.Sprintf("%s leave rejected", event.LeaveType)
	case events.LeaveRequestRemoved:
		message = fmt.Sprintf("%s leave request removed while %s", event.LeaveType, event.Status)
	default:
		message = "unrecognized leave event"
	}

	return bootstrap.AuditLog{
		Action:   event.EventType,
		Message:  message,
		TenantID: event.TenantID,
		ActorID:  event.ActorID,
		Meta: map[string]any{
			"leave_request_id": event.LeaveRequestID,
			"request_number":   event.RequestNumber,
			"employee_id":      event.EmployeeID,
			"start_date":       event.StartDate,
			"end_date":         event.EndDate,
			"status":           event.Status,
		},
	}
}
