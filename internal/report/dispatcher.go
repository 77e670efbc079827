package report

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"pinyindrill/internal/game"
)

const defaultQueueSize = 64

// Dispatcher implements game.ReportSink. Summaries are queued and written by a
// background worker so the player's response never waits on storage.
type Dispatcher struct {
	writers []Writer
	queue   chan Report
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ game.ReportSink = (*Dispatcher)(nil)

// NewDispatcher starts a worker that fans each report out to writers.
func NewDispatcher(writers ...Writer) *Dispatcher {
	d := &Dispatcher{
		writers: writers,
		queue:   make(chan Report, defaultQueueSize),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Persist queues a report for the summary. If the queue is full or the
// dispatcher is closed the report is written inline instead of being dropped.
func (d *Dispatcher) Persist(ctx context.Context, s game.Summary) {
	r := FromSummary(s, d.now())

	d.mu.RLock()
	if !d.closed {
		select {
		case d.queue <- r:
			d.mu.RUnlock()
			return
		default:
			log.Warn().Str("player", r.PlayerName).Msg("report queue full, writing inline")
		}
	}
	d.mu.RUnlock()
	d.write(context.WithoutCancel(ctx), r)
}

// Close stops accepting queued work and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		log.Warn().Int("pending", len(d.queue)).Msg("report queue not drained before shutdown")
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for r := range d.queue {
		d.write(context.Background(), r)
	}
}

func (d *Dispatcher) write(ctx context.Context, r Report) {
	for _, w := range d.writers {
		if err := w.Write(ctx, r); err != nil {
			log.Error().Err(err).
				Str("player", r.PlayerName).
				Str("outcome", r.Outcome()).
				Msg("failed to persist mistake report")
		}
	}
}
