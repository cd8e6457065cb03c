package domain

import (
	"context"
	"iter"
)

// Invoker launches the solver for one job and waits for it to exit.
// The returned error reports only that the process could not be started;
// the solver's own exit status is deliberately not surfaced.
type Invoker interface {
	Invoke(ctx context.Context, job Job) error
}

// JobSource is a finite, restartable sequence of jobs in canonical order.
type JobSource interface {
	Jobs() iter.Seq2[Job, error]
	Count() int
}
