package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hris-leave/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     "req-1",
		TenantID:      uuid.NewString(),
		AggregateType: "leave_request",
		AggregateID:   uuid.NewString(),
		EventType:     "leave_request_submitted",
		Topic:         "hr.leave.lifecycle.v1",
		Payload:       []byte(`{"event_type":"leave_request_submitted"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO outbox_events`).
			WithArgs(event.ID, event.RequestID, event.TenantID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		assert.NoError(t, err)

		repo := kafka.NewOutboxRepository(db).WithTx(tx)
		assert.NoError(t, repo.Create(ctx, event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative invalid event is not written", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		event := validEvent()
		event.Payload = nil

		err = kafka.NewOutboxRepository(db).Create(ctx, event)
		assert.EqualError(t, err, "outbox payload is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "request_id", "tenant_id", "aggregate_type", "aggregate_id",
			"event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
		}).AddRow("e-1", "req-1", "t-1", "leave_request", "l-1",
			"leave_request_approved", "hr.leave.lifecycle.v1", []byte(`{}`), "pending", 0, now)

		mock.ExpectQuery(`SELECT .* FROM outbox_events`).
			WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxRetries, 25).
			WillReturnRows(rows)

		events, err := kafka.NewOutboxRepository(db).ListPending(ctx, 25)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "e-1", events[0].ID)
		assert.Equal(t, "leave_request_approved", events[0].EventType)
		assert.Equal(t, "t-1", events[0].TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .* FROM outbox_events`).WillReturnError(errors.New("db down"))

		events, err := kafka.NewOutboxRepository(db).ListPending(ctx, 10)
		assert.Error(t, err)
		assert.Nil(t, events)
	})
}

func TestOutboxRepository_Mark(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs("e-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkSent(ctx, "e-1"))

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs("e-2", kafka.OutboxStatusFailed, "broker unavailable", kafka.MaxOutboxRetries).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkFailed(ctx, "e-2", "broker unavailable"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	event := validEvent()
	assert.NoError(t, kafka.ValidateOutboxEvent(event))

	event.Status = "unknown"
	assert.EqualError(t, kafka.ValidateOutboxEvent(event), "invalid outbox status: unknown")

	event = validEvent()
	event.Topic = ""
	assert.EqualError(t, kafka.ValidateOutboxEvent(event), "outbox topic is required")
}
