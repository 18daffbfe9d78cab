// Package worker implements the buffered worker pool pattern for async
// telemetry processing. This decouples HTTP request handling from database
// writes, providing:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/teampulse/analytics-api/internal/models"
)

// Prometheus metrics
var (
	sessionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athletics_sessions_ingested_total",
		Help: "Total number of session events ingested",
	})

	sessionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athletics_sessions_processed_total",
		Help: "Total number of session events processed by workers",
	})

	sessionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athletics_sessions_failed_total",
		Help: "Total number of session events that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "athletics_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "athletics_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	sessionsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athletics_sessions_load_shed_total",
		Help: "Total number of session events dropped due to load shedding",
	})
)

// Job represents a unit of work for the worker pool
type Job struct {
	Event     *models.SessionEvent
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async telemetry processing
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	// Close before cancel so workers drain the queue instead of racing the
	// context branch; pending batches must flush on shutdown.
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a session event to the queue. Returns false when the pool is
// shutting down or the queue is saturated; the event is then load-shed.
func (p *Pool) Enqueue(event *models.SessionEvent) bool {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}

	job := Job{
		Event:     event,
		Timestamp: time.Now(),
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue event (pool stopped)", "error", r)
		}
	}()

	// Before Start runs there is no context; a nil Done channel never fires
	// and the queue simply buffers the job.
	var ctxDone <-chan struct{}
	if p.ctx != nil {
		ctxDone = p.ctx.Done()
	}

	select {
	case p.jobQueue <- job:
		sessionsIngested.Inc()
		return true
	case <-ctxDone:
		p.logger.Warn("Worker pool context canceled, dropping event")
		sessionsLoadShed.Inc()
		return false
	default:
		sessionsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			sessionsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch processed", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			sessionsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				// Channel closed, flush remaining
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes a batch of session events to ClickHouse
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO athletics.session_metrics (
			event_id, source_id, athlete_id, session_date, session_type,
			duration_minutes, distance_km, max_speed_kmh,
			avg_heart_rate, max_heart_rate, sprints, calories, received_at
		)
	`)
	if err != nil {
		return err
	}

	for _, job := range batch {
		event := job.Event

		sessionDate, err := event.ParsedDate()
		if err != nil {
			// Handlers validate dates before enqueueing; fall back to
			// receipt time for anything enqueued directly.
			sessionDate = job.Timestamp.UTC()
		}

		if err := chBatch.Append(
			event.EventID,
			event.SourceID,
			event.AthleteID,
			sessionDate,
			event.SessionType,
			int32(event.DurationMinutes),
			event.DistanceKm,
			event.MaxSpeedKmh,
			int32(event.AvgHeartRate),
			int32(event.MaxHeartRate),
			int32(event.Sprints),
			int32(event.Calories),
			event.ReceivedAt,
		); err != nil {
			return err
		}
	}

	return chBatch.Send()
}

// reportQueueDepth updates the queue depth gauge periodically
func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
