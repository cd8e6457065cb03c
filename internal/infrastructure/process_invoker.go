package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"

	"thop-experiments/internal/domain"
	"thop-experiments/internal/solver"
)

// ProcessInvoker runs the solver as a child process and waits for it.
type ProcessInvoker struct {
	logger   *zap.Logger
	binaries solver.Binaries
	dir      string
	stdout   io.Writer
	stderr   io.Writer
}

// NewProcessInvoker runs solvers in dir with the given output streams; nil
// streams are discarded.
func NewProcessInvoker(logger *zap.Logger, binaries solver.Binaries, dir string, stdout, stderr io.Writer) *ProcessInvoker {
	return &ProcessInvoker{
		logger:   logger,
		binaries: binaries,
		dir:      dir,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Invoke blocks until the solver exits. Only a failure to start the process
// is reported. The child is not tied to ctx: a running solver always finishes
// its own time budget.
func (p *ProcessInvoker) Invoke(_ context.Context, job domain.Job) error {
	c := solver.Build(job, p.binaries)

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = p.dir
	cmd.Stdout = p.stdout
	cmd.Stderr = p.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrSpawn, c.Path, err)
	}
	p.logger.Debug("Solver started", zap.Int("pid", cmd.Process.Pid), zap.String("cmd", c.String()))

	// код возврата не анализируется
	_ = cmd.Wait()
	return nil
}
