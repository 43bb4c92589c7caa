package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/i2i/project-management/internal/api/metrics"
	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// DedupChecker abstracts the replay-suppression store (Redis).
type DedupChecker interface {
	Seen(ctx context.Context, event domain.AuditEvent) (bool, error)
	Mark(ctx context.Context, event domain.AuditEvent) error
}

// Dispatcher persists audit events asynchronously through a fixed set of
// workers. Events are sharded by entity id with consistent hashing, so
// the trail of a single aggregate is written in submission order.
// Failures are logged and dropped; audit writes never fail the
// originating operation.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	repo    ports.AuditRepository
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		repo:    repo,
		dedup:   dedup,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.AuditRecorder. When the responsible worker's
// buffer is full the event is dropped rather than blocking the caller.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	idx := d.shardIndex(event.EntityID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("entity_id", event.EntityID).
			Str("action", string(event.Action)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, event)
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, event domain.AuditEvent) {
	start := time.Now()

	seen, err := d.dedup.Seen(ctx, event)
	if err != nil {
		d.log.Warn().Err(err).Str("entity_id", event.EntityID).Msg("audit dedup check failed, recording anyway")
	} else if seen {
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		return
	}
	metrics.AuditDedupTotal.WithLabelValues("miss").Inc()

	if markErr := d.dedup.Mark(ctx, event); markErr != nil {
		d.log.Warn().Err(markErr).Str("entity_id", event.EntityID).Msg("failed to set audit dedup key")
	}

	if err := d.repo.Insert(ctx, &event); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		d.log.Error().Err(err).
			Str("entity_id", event.EntityID).
			Str("action", string(event.Action)).
			Int("worker_id", workerID).
			Msg("audit event write failed")
		return
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
	metrics.AuditWriteDuration.WithLabelValues(string(event.Action)).Observe(time.Since(start).Seconds())
}
