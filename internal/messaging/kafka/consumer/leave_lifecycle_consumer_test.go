package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-hris-leave/internal/bootstrap"
	"go-hris-leave/internal/events"
	"go-hris-leave/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader hands out queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []int64
	drained   chan struct{}
	once      sync.Once
}

func newFakeReader(msgs ...kafkago.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		m := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	r.once.Do(func() { close(r.drained) })
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []bootstrap.AuditLog
}

func (a *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func TestConsumeLeaveLifecycle(t *testing.T) {
	approved, err := json.Marshal(events.LeaveRequestEvent{
		EventType:      events.LeaveRequestApproved,
		LeaveRequestID: "l-1",
		TenantID:       "t-1",
		EmployeeID:     "e-1",
		ActorID:        "a-1",
		LeaveType:      "Vacation",
		DurationDays:   5,
		Status:         "Approved",
	})
	assert.NoError(t, err)

	reader := newFakeReader(
		kafkago.Message{Offset: 1, Value: approved},
		kafkago.Message{Offset: 2, Value: []byte("not json")},
	)
	audit := &recordingAudit{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.ConsumeLeaveLifecycle(ctx, reader, audit, zap.NewNop())
		close(done)
	}()

	select {
	case <-reader.drained:
	case <-time.After(time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	<-done

	assert.Equal(t, []int64{1, 2}, reader.committed)
	assert.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, events.LeaveRequestApproved, entry.Action)
	assert.Equal(t, "Vacation leave approved, 5 day(s) debited", entry.Message)
	assert.Equal(t, "t-1", entry.TenantID)
	assert.Equal(t, "a-1", entry.ActorID)
	assert.Equal(t, "l-1", entry.Meta["leave_request_id"])
}

type erroringReader struct {
	calls int
}

func (r *erroringReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.calls++
	if r.calls >= 3 {
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	return kafkago.Message{}, errors.New("broker unavailable")
}

func (r *erroringReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return nil
}

func TestConsumeLeaveLifecycle_FetchErrorsKeepConsuming(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	reader := &erroringReader{}
	consumer.ConsumeLeaveLifecycle(ctx, reader, &recordingAudit{}, zap.NewNop())

	assert.Equal(t, 3, reader.calls)
}
