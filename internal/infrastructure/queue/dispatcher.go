package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/planifikues/travel-planner/internal/api/metrics"
	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans auth events out to a fixed set of workers, sharded by
// email so events for one account are stored in the order they happened.
// Record never blocks the request path; a full shard drops the event.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	service ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers drain what is already
// buffered and exit once ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues ev for persistence.
func (d *Dispatcher) Record(ev domain.AuthEvent) {
	idx := d.shardIndex(ev.Email)
	select {
	case d.workers[idx] <- ev:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("type", string(ev.Type)).
			Int("worker_id", idx).
			Msg("audit buffer full, event dropped")
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch, depth)
			return
		case ev := <-ch:
			depth.Dec()
			d.process(ctx, id, ev)
		}
	}
}

// drain stores whatever is still buffered using a short detached context.
func (d *Dispatcher) drain(id int, ch <-chan domain.AuthEvent, depth interface{ Dec() }) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case ev := <-ch:
			depth.Dec()
			d.process(ctx, id, ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, ev domain.AuthEvent) {
	start := time.Now()
	err := d.service.Process(ctx, ev)
	metrics.AuditProcessingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEventsStoredTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("type", string(ev.Type)).
			Int("worker_id", id).
			Msg("auth event processing failed")
		return
	}
	metrics.AuditEventsStoredTotal.WithLabelValues("ok").Inc()
}
