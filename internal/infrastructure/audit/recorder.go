// Package audit provides an asynchronous recorder for authentication
// events. Recording must never slow down or fail a login, so the recorder
// is buffered, best-effort, and drops on backpressure.
package audit

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/travelblog/auth-service/internal/api/metrics"
	"github.com/travelblog/auth-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder routes audit events to a fixed set of workers using consistent
// hashing on the username, so all events for one principal are persisted in
// the order they occurred.
type Recorder struct {
	workers []chan ports.AuditEvent
	trail   ports.AuditTrail
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, trail ports.AuditTrail, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan ports.AuditEvent, numWorkers),
		trail:   trail,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event without blocking. When the responsible worker's
// buffer is full the event is dropped and counted; auth latency wins over
// trail completeness.
func (r *Recorder) Record(event ports.AuditEvent) {
	select {
	case r.workers[r.shardIndex(event.Username)] <- event:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		r.log.Warn().
			Str("kind", event.Kind).
			Str("username", event.Username).
			Msg("audit event dropped, worker queue full")
	}
}

// shardIndex maps a username deterministically to a worker index.
func (r *Recorder) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := r.trail.Append(ctx, event); err != nil {
				r.log.Error().Err(err).
					Str("kind", event.Kind).
					Int("worker_id", id).
					Msg("audit event persistence failed")
			}
		}
	}
}
