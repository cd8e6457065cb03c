package app

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thop-experiments/internal/domain"
	"thop-experiments/internal/grid"
	"thop-experiments/internal/paths"
	"thop-experiments/internal/registry"
	"thop-experiments/internal/seeds"
)

// sliceSource yields jobs from a slice; failAt >= 0 yields an error at that index.
type sliceSource struct {
	jobs   []domain.Job
	failAt int
}

func (s sliceSource) Count() int { return len(s.jobs) }

func (s sliceSource) Jobs() iter.Seq2[domain.Job, error] {
	return func(yield func(domain.Job, error) bool) {
		for i, j := range s.jobs {
			if i == s.failAt {
				yield(domain.Job{}, fmt.Errorf("%w: job %d", domain.ErrMissingConfiguration, i))
				return
			}
			if !yield(j, nil) {
				return
			}
		}
	}
}

func makeJobs(n int) []domain.Job {
	jobs := make([]domain.Job, n)
	for i := range jobs {
		jobs[i] = domain.Job{Repetition: i, OutputPath: fmt.Sprintf("out/%04d", i)}
	}
	return jobs
}

// recorder counts invocations per output path and tracks how many run at once.
type recorder struct {
	mu       sync.Mutex
	calls    map[string]int
	order    []string
	inFlight atomic.Int32
	peak     atomic.Int32
	hold     time.Duration
	failOn   string
}

func newRecorder(hold time.Duration) *recorder {
	return &recorder{calls: make(map[string]int), hold: hold}
}

func (r *recorder) Invoke(_ context.Context, job domain.Job) error {
	if job.OutputPath == r.failOn {
		return fmt.Errorf("%w: %s", domain.ErrSpawn, job.OutputPath)
	}
	n := r.inFlight.Add(1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(r.hold)
	r.inFlight.Add(-1)

	r.mu.Lock()
	r.calls[job.OutputPath]++
	r.order = append(r.order, job.OutputPath)
	r.mu.Unlock()
	return nil
}

func TestRun_EveryJobInvokedOnce(t *testing.T) {
	rec := newRecorder(0)
	d := NewDispatcher(zap.NewNop(), 4, rec, 0)
	jobs := makeJobs(500)

	stats, err := d.Run(context.Background(), sliceSource{jobs: jobs, failAt: -1})
	require.NoError(t, err)

	assert.Equal(t, 500, stats.Submitted)
	assert.EqualValues(t, 500, stats.Launched)
	assert.Zero(t, stats.Skipped)
	require.Len(t, rec.calls, 500)
	for _, j := range jobs {
		assert.Equal(t, 1, rec.calls[j.OutputPath], j.OutputPath)
	}
}

func TestRun_SingleWorkerKeepsSubmissionOrder(t *testing.T) {
	rec := newRecorder(0)
	d := NewDispatcher(zap.NewNop(), 1, rec, 0)
	jobs := makeJobs(50)

	_, err := d.Run(context.Background(), sliceSource{jobs: jobs, failAt: -1})
	require.NoError(t, err)

	want := make([]string, len(jobs))
	for i, j := range jobs {
		want[i] = j.OutputPath
	}
	assert.Equal(t, want, rec.order)
}

func TestRun_ConcurrencyBound(t *testing.T) {
	for _, workers := range []int{1, 3, 6} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			rec := newRecorder(2 * time.Millisecond)
			d := NewDispatcher(zap.NewNop(), workers, rec, 0)

			_, err := d.Run(context.Background(), sliceSource{jobs: makeJobs(60), failAt: -1})
			require.NoError(t, err)

			assert.LessOrEqual(t, int(rec.peak.Load()), workers)
			assert.Len(t, rec.calls, 60)
		})
	}
}

func TestRun_NonPositiveWorkersFallsBackToOne(t *testing.T) {
	d := NewDispatcher(zap.NewNop(), 0, newRecorder(0), 0)
	assert.Equal(t, 1, d.Workers())
}

func TestRun_SpawnFailureAborts(t *testing.T) {
	rec := newRecorder(time.Millisecond)
	rec.failOn = "out/0005"
	d := NewDispatcher(zap.NewNop(), 1, rec, 0)

	stats, err := d.Run(context.Background(), sliceSource{jobs: makeJobs(100), failAt: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSpawn))

	// a single worker launches the five jobs before the failing one and nothing after it
	assert.EqualValues(t, 5, stats.Launched)
	assert.Len(t, rec.calls, 5)
	assert.EqualValues(t, stats.Submitted-6, stats.Skipped)
}

func TestRun_ResolutionErrorStopsSubmission(t *testing.T) {
	rec := newRecorder(0)
	d := NewDispatcher(zap.NewNop(), 2, rec, 0)

	stats, err := d.Run(context.Background(), sliceSource{jobs: makeJobs(20), failAt: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingConfiguration))
	assert.Equal(t, 10, stats.Submitted)
	assert.EqualValues(t, 10, stats.Launched+stats.Skipped)
}

func TestRun_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newRecorder(0)
	d := NewDispatcher(zap.NewNop(), 2, rec, 0)

	stats, err := d.Run(ctx, sliceSource{jobs: makeJobs(10), failAt: -1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Launched)
	assert.Empty(t, rec.calls)
}

func TestRun_LaunchInterval(t *testing.T) {
	rec := newRecorder(0)
	d := NewDispatcher(zap.NewNop(), 4, rec, 20*time.Millisecond)

	start := time.Now()
	_, err := d.Run(context.Background(), sliceSource{jobs: makeJobs(4), failAt: -1})
	require.NoError(t, err)

	// first launch is immediate, the next three wait one interval each
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
	assert.Len(t, rec.calls, 4)
}

func TestRun_PublishedSweep(t *testing.T) {
	resolver, err := paths.NewResolver("in", "out", "acothop*", "acothop")
	require.NoError(t, err)
	gen, err := grid.NewGenerator(domain.DefaultAxes(), 10, domain.DefaultVariants(), grid.Deps{
		Registry:      registry.Default(),
		Seeds:         seeds.Default(),
		Paths:         resolver,
		RuntimeFactor: 1,
	})
	require.NoError(t, err)

	rec := newRecorder(0)
	stats, err := NewDispatcher(zap.NewNop(), 3, rec, 0).Run(context.Background(), gen)
	require.NoError(t, err)

	assert.Equal(t, 8640, stats.Submitted)
	assert.Len(t, rec.calls, 8640)
	for path, n := range rec.calls {
		require.Equal(t, 1, n, path)
	}
}
