package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"thop-experiments/internal/domain"
	"thop-experiments/internal/solver"
)

// DirPreparer creates solver output directories ahead of dispatch.
type DirPreparer interface {
	Prepare(dirs []string) error
}

type SweepOptions struct {
	PlanFile string
	DryRun   bool
}

// Sweep ties the job source to the dispatcher: optional plan output, output
// directory preparation, then dispatch.
type Sweep struct {
	logger     *zap.Logger
	jobs       domain.JobSource
	dispatcher *Dispatcher
	binaries   solver.Binaries
	plans      domain.PlanWriter
	dirs       DirPreparer
	outputDirs []string
}

func NewSweep(
	logger *zap.Logger,
	jobs domain.JobSource,
	dispatcher *Dispatcher,
	binaries solver.Binaries,
	plans domain.PlanWriter,
	dirs DirPreparer,
	outputDirs []string,
) *Sweep {
	return &Sweep{
		logger:     logger,
		jobs:       jobs,
		dispatcher: dispatcher,
		binaries:   binaries,
		plans:      plans,
		dirs:       dirs,
		outputDirs: outputDirs,
	}
}

// Plan renders the command line of every job in canonical order.
func (s *Sweep) Plan() ([]string, error) {
	lines := make([]string, 0, s.jobs.Count())
	for job, err := range s.jobs.Jobs() {
		if err != nil {
			return nil, err
		}
		lines = append(lines, solver.Build(job, s.binaries).String())
	}
	return lines, nil
}

func (s *Sweep) Run(ctx context.Context, opts SweepOptions) (Stats, error) {
	s.logger.Info("Starting sweep",
		zap.Int("jobs", s.jobs.Count()),
		zap.Int("workers", s.dispatcher.Workers()),
		zap.Bool("dry_run", opts.DryRun))

	if opts.PlanFile != "" {
		lines, err := s.Plan()
		if err != nil {
			return Stats{}, fmt.Errorf("build plan: %w", err)
		}
		if err := s.plans.WritePlan(opts.PlanFile, lines); err != nil {
			return Stats{}, fmt.Errorf("write plan: %w", err)
		}
		s.logger.Info("Plan written", zap.String("file", opts.PlanFile), zap.Int("lines", len(lines)))
	}

	if opts.DryRun {
		s.logger.Info("Dry run, no solver launched")
		return Stats{}, nil
	}

	if err := s.dirs.Prepare(s.outputDirs); err != nil {
		return Stats{}, fmt.Errorf("prepare output directories: %w", err)
	}

	return s.dispatcher.Run(ctx, s.jobs)
}
