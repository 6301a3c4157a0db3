package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDrainDelay is the fixed pause between deliveries. The messaging
// provider throttles aggressive senders, so the queue paces itself rather
// than relying on retries.
const DefaultDrainDelay = 2 * time.Second

// Queue is a FIFO of pending notifications drained by a background task
// with a fixed inter-item delay. Delivery is best effort: a failed send is
// logged and the queue moves on. The sleep function is injectable so tests
// run without real timers.
type Queue struct {
	sender    Sender
	primaryTo string
	boltTo    string
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration)

	mu    sync.Mutex
	items []Message
	wake  chan struct{}
}

// QueueConfig configures notification routing and pacing.
type QueueConfig struct {
	PrimaryTo  string        // gets every notification
	BoltTo     string        // additionally gets Bolt-category notifications
	DrainDelay time.Duration // defaults to DefaultDrainDelay
}

// NewQueue builds a queue around a sender.
func NewQueue(sender Sender, cfg QueueConfig) *Queue {
	delay := cfg.DrainDelay
	if delay <= 0 {
		delay = DefaultDrainDelay
	}
	return &Queue{
		sender:    sender,
		primaryTo: cfg.PrimaryTo,
		boltTo:    cfg.BoltTo,
		delay:     delay,
		sleep:     sleepCtx,
		wake:      make(chan struct{}, 1),
	}
}

// Enqueue appends a message for delivery. Messages missing required
// template fields are dropped here, with a log line, instead of failing
// later inside the drain loop.
func (q *Queue) Enqueue(msg Message) {
	if !msg.Valid() {
		slog.Warn("dropping invalid notification",
			"scooter_id", msg.ScooterID,
			"current_km", msg.CurrentKm,
			"next_km", msg.NextKm,
		)
		return
	}

	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Run drains the queue until ctx is cancelled. Intended to run as a
// background goroutine from main.
func (q *Queue) Run(ctx context.Context) {
	for {
		if !q.drainOne(ctx) {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
		q.sleep(ctx, q.delay)
	}
}

// drainOne pops and delivers the head of the queue.
// Returns false when the queue was empty.
func (q *Queue) drainOne(ctx context.Context) bool {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	q.mu.Unlock()

	q.deliver(ctx, msg)
	return true
}

// deliver sends to the primary number, and for Bolt-category services also
// to the Bolt number. Failures are logged and never re-queued.
func (q *Queue) deliver(ctx context.Context, msg Message) {
	if q.primaryTo != "" {
		if err := q.sender.Send(ctx, msg, q.primaryTo); err != nil {
			slog.Error("notification delivery failed",
				"to", q.primaryTo, "scooter_id", msg.ScooterID, "error", err)
		}
	}
	if msg.IsBolt() && q.boltTo != "" {
		if err := q.sender.Send(ctx, msg, q.boltTo); err != nil {
			slog.Error("bolt notification delivery failed",
				"to", q.boltTo, "scooter_id", msg.ScooterID, "error", err)
		}
	}
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
