package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"livecounter-backend/internal/metrics"
	"livecounter-backend/internal/model"
)

// Recorder persists one lookup record.
type Recorder interface {
	RecordLookup(ctx context.Context, l *model.Lookup) error
}

// WorkerPool writes lookup records off the request path.
type WorkerPool struct {
	size     int
	jobs     chan model.Lookup
	recorder Recorder
	log      zerolog.Logger
	metrics  *metrics.Metrics
	wg       sync.WaitGroup
}

// NewWorkerPool creates a pool of size workers fed by a queue of queueSize
// records. m may be nil.
func NewWorkerPool(size, queueSize int, recorder Recorder, log zerolog.Logger, m *metrics.Metrics) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = size
	}
	return &WorkerPool{
		size:     size,
		jobs:     make(chan model.Lookup, queueSize),
		recorder: recorder,
		log:      log,
		metrics:  m,
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled,
// after writing whatever is still queued.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has exited.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	wp.log.Debug().Int("worker", id).Msg("audit worker started")
	for {
		select {
		case l := <-wp.jobs:
			wp.record(ctx, l)
		case <-ctx.Done():
			wp.drain()
			wp.log.Debug().Int("worker", id).Msg("audit worker shutting down")
			return
		}
	}
}

func (wp *WorkerPool) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case l := <-wp.jobs:
			wp.record(ctx, l)
		default:
			return
		}
	}
}

func (wp *WorkerPool) record(ctx context.Context, l model.Lookup) {
	if err := wp.recorder.RecordLookup(ctx, &l); err != nil {
		wp.log.Error().Err(err).Str("resource", string(l.Resource)).Msg("failed to record lookup")
	}
}

// Dispatch queues a record without blocking. It reports false when the
// queue is full and the record was dropped.
func (wp *WorkerPool) Dispatch(l model.Lookup) bool {
	select {
	case wp.jobs <- l:
		return true
	default:
		if wp.metrics != nil {
			wp.metrics.AuditDropped.Inc()
		}
		wp.log.Warn().Str("resource", string(l.Resource)).Msg("audit queue full, dropping lookup record")
		return false
	}
}
