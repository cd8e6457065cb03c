package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"thop-experiments/internal/domain"
)

// Dispatcher runs every job of a source on a fixed-size worker pool.
// Jobs are handed to workers in submission order; completion order is free.
type Dispatcher struct {
	logger  *zap.Logger
	workers int
	invoker domain.Invoker
	limiter *rate.Limiter
}

// NewDispatcher creates a pool of the given size. A non-positive interval
// disables launch pacing.
func NewDispatcher(logger *zap.Logger, workers int, invoker domain.Invoker, interval time.Duration) *Dispatcher {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Dispatcher{
		logger:  logger,
		workers: max(1, workers),
		invoker: invoker,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Workers returns the pool size.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Stats summarizes a finished Run.
type Stats struct {
	Submitted int
	Launched  int64
	Skipped   int64
	Elapsed   time.Duration
}

// Run submits every job and returns once all submitted work has finished.
// Solver exit status is never collected. A job that cannot be resolved or a
// solver that cannot be spawned stops the hand-out of further jobs; the
// jobs already running are waited for and the error is returned.
func (d *Dispatcher) Run(ctx context.Context, src domain.JobSource) (Stats, error) {
	start := time.Now()
	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failErr  error
		launched atomic.Int64
		skipped  atomic.Int64
	)
	fail := func(err error) {
		failOnce.Do(func() {
			failErr = err
			cancel()
		})
	}

	// Буфер на все задачи: постановка в очередь не блокируется
	tasks := make(chan domain.Job, max(1, src.Count()))

	// Запускаем воркеры
	for i := range d.workers {
		wg.Add(1)
		d.logger.Debug("Starting worker", zap.Int("id", i))
		go d.worker(ctx, i, tasks, fail, &launched, &skipped, &wg)
	}

	submitted := 0
submit:
	for job, err := range src.Jobs() {
		if err != nil {
			fail(err)
			break
		}
		select {
		case tasks <- job:
			submitted++
		case <-ctx.Done():
			break submit
		}
	}
	close(tasks)
	wg.Wait()

	stats := Stats{
		Submitted: submitted,
		Launched:  launched.Load(),
		Skipped:   skipped.Load(),
		Elapsed:   time.Since(start),
	}
	d.logger.Info("Dispatch finished",
		zap.Int("submitted", stats.Submitted),
		zap.Int64("launched", stats.Launched),
		zap.Int64("skipped", stats.Skipped),
		zap.Duration("elapsed", stats.Elapsed))

	if failErr != nil {
		return stats, failErr
	}
	// прерывание извне: часть задач не была запущена
	if err := parent.Err(); err != nil && (stats.Skipped > 0 || submitted < src.Count()) {
		return stats, err
	}
	return stats, nil
}

func (d *Dispatcher) worker(ctx context.Context, id int, tasks <-chan domain.Job, fail func(error), launched, skipped *atomic.Int64, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range tasks {
		// после отмены очередь только вычерпывается
		if ctx.Err() != nil {
			skipped.Add(1)
			continue
		}
		if err := d.limiter.Wait(ctx); err != nil {
			skipped.Add(1)
			continue
		}

		d.logger.Debug("Launching job",
			zap.Int("worker", id),
			zap.String("output", job.OutputPath))

		if err := d.invoker.Invoke(ctx, job); err != nil {
			fail(err)
			continue
		}
		launched.Add(1)
	}
	d.logger.Debug("Worker finished", zap.Int("id", id))
}
