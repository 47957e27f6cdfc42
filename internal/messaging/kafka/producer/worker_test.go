package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hris-leave/internal/messaging/kafka"
	kafkaMock "go-hris-leave/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	messages []kafkago.Message
	failFor  map[string]error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := f.failFor[string(m.Key)]; err != nil {
			return err
		}
		f.messages = append(f.messages, m)
	}
	return nil
}

func headerValue(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("success publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{{
			ID:            "e-1",
			RequestID:     "rid-1",
			TenantID:      "t-1",
			AggregateType: "leave_request",
			AggregateID:   "l-1",
			EventType:     "leave_request_submitted",
			Topic:         "hr.leave.lifecycle.v1",
			Payload:       []byte(`{}`),
		}}, nil)
		repo.EXPECT().MarkSent(ctx, "e-1").Return(nil)

		sent, err := processPendingEvents(ctx, repo, writer, zap.NewNop(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "hr.leave.lifecycle.v1", msg.Topic)
		assert.Equal(t, "l-1", string(msg.Key))
		assert.Equal(t, "leave_request_submitted", headerValue(msg, "event_type"))
		assert.Equal(t, "t-1", headerValue(msg, "tenant_id"))
		assert.Equal(t, "rid-1", headerValue(msg, "request_id"))
	})

	t.Run("negative publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"l-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{
			{ID: "e-1", AggregateID: "l-1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "e-2", AggregateID: "l-2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "e-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "e-2").Return(nil)

		sent, err := processPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("negative list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 10).Return(nil, errors.New("db down"))

		sent, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10)

		assert.Error(t, err)
		assert.Zero(t, sent)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), 5).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10*time.Millisecond, 5)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
