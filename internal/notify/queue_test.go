package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSend struct {
	to        string
	scooterID string
}

type stubSender struct {
	mu   sync.Mutex
	sent []recordedSend
	fail map[string]error
}

func (s *stubSender) Send(_ context.Context, msg Message, to string) error {
	s.mu.Lock()
	s.sent = append(s.sent, recordedSend{to: to, scooterID: msg.ScooterID})
	s.mu.Unlock()
	if err, ok := s.fail[msg.ScooterID]; ok {
		return err
	}
	return nil
}

func (s *stubSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func testMessage(scooterID, category string) Message {
	return Message{
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ScooterID:      scooterID,
		CurrentKm:      12000,
		NextKm:         16000,
		ServiceDetails: "oil change",
		CategoryName:   category,
	}
}

func newTestQueue(sender Sender) *Queue {
	q := NewQueue(sender, QueueConfig{PrimaryTo: "+35799000001", BoltTo: "+35799000002"})
	q.sleep = func(context.Context, time.Duration) {}
	return q
}

func drainAll(t *testing.T, q *Queue) {
	t.Helper()
	for q.drainOne(context.Background()) {
	}
}

func TestQueueDrainsInOrder(t *testing.T) {
	sender := &stubSender{}
	q := newTestQueue(sender)

	q.Enqueue(testMessage("EBC 123", "125cc"))
	q.Enqueue(testMessage("EBC 456", "50cc"))
	q.Enqueue(testMessage("EBC 789", "125cc"))
	require.Equal(t, 3, q.Len())

	drainAll(t, q)

	require.Len(t, sender.sent, 3)
	assert.Equal(t, "EBC 123", sender.sent[0].scooterID)
	assert.Equal(t, "EBC 456", sender.sent[1].scooterID)
	assert.Equal(t, "EBC 789", sender.sent[2].scooterID)
	for _, s := range sender.sent {
		assert.Equal(t, "+35799000001", s.to)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueueBoltRouting(t *testing.T) {
	sender := &stubSender{}
	q := newTestQueue(sender)

	q.Enqueue(testMessage("EBC 100", "125cc Bolt"))
	drainAll(t, q)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "+35799000001", sender.sent[0].to)
	assert.Equal(t, "+35799000002", sender.sent[1].to)
}

func TestQueueBoltWithoutBoltNumber(t *testing.T) {
	sender := &stubSender{}
	q := NewQueue(sender, QueueConfig{PrimaryTo: "+35799000001"})
	q.sleep = func(context.Context, time.Duration) {}

	q.Enqueue(testMessage("EBC 100", "125cc Bolt"))
	drainAll(t, q)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+35799000001", sender.sent[0].to)
}

func TestQueueContinuesAfterSendFailure(t *testing.T) {
	sender := &stubSender{fail: map[string]error{"EBC 456": errors.New("provider down")}}
	q := newTestQueue(sender)

	q.Enqueue(testMessage("EBC 123", "125cc"))
	q.Enqueue(testMessage("EBC 456", "125cc"))
	q.Enqueue(testMessage("EBC 789", "125cc"))
	drainAll(t, q)

	require.Len(t, sender.sent, 3)
	assert.Equal(t, "EBC 789", sender.sent[2].scooterID)
	assert.Equal(t, 0, q.Len())
}

func TestQueueDropsInvalidMessages(t *testing.T) {
	sender := &stubSender{}
	q := newTestQueue(sender)

	q.Enqueue(Message{ScooterID: "EBC 123"}) // no date, no readings
	assert.Equal(t, 0, q.Len())

	drainAll(t, q)
	assert.Empty(t, sender.sent)
}

func TestQueueRunStopsOnCancel(t *testing.T) {
	sender := &stubSender{}
	q := newTestQueue(sender)
	q.Enqueue(testMessage("EBC 123", "125cc"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
