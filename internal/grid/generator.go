// Package grid enumerates the experiment sweep.
//
// Order is part of the contract: for each variant pass (tuned first, then
// general), the grid axes are walked as a Cartesian product in declared
// order, outermost axis slowest, and for every coordinate the repetitions
// run 0..n-1 in ascending order.
package grid

import (
	"fmt"
	"iter"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/stat/combin"

	"thop-experiments/internal/budget"
	"thop-experiments/internal/domain"
)

type ConfigRegistry interface {
	Lookup(family string, itemsPerCity int, knapsackType string, useTuned bool) (domain.ParameterConfiguration, error)
	Validate(axes domain.Axes) error
	ValidateFallback() error
}

type SeedTable interface {
	SeedFor(repetition int) (int, error)
	Validate(repetitions int) error
}

type PathResolver interface {
	InputPath(c domain.GridCoordinate) string
	OutputPath(c domain.GridCoordinate, repetition int, v domain.Variant) string
}

// Deps are the read-only collaborators used to materialize a job.
type Deps struct {
	Registry      ConfigRegistry
	Seeds         SeedTable
	Paths         PathResolver
	RuntimeFactor float64
}

// Generator produces fully resolved jobs. It performs no I/O.
type Generator struct {
	axes        domain.Axes
	repetitions int
	variants    []domain.Variant
	deps        Deps
}

// NewGenerator validates everything a sweep could hit so that resolution
// never fails half-way through a run: registry coverage, seed table range and
// the size token of every family.
func NewGenerator(axes domain.Axes, repetitions int, variants []domain.Variant, deps Deps) (*Generator, error) {
	if err := axes.Validate(); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("%w: no variants selected", domain.ErrInvalidConfig)
	}
	if deps.RuntimeFactor <= 0 {
		return nil, fmt.Errorf("%w: runtime factor must be > 0", domain.ErrInvalidConfig)
	}

	var err error
	seen := make(map[domain.Variant]bool, len(variants))
	for _, v := range variants {
		if seen[v] {
			err = multierr.Append(err, fmt.Errorf("%w: variant %s listed twice", domain.ErrInvalidConfig, v))
		}
		seen[v] = true
	}
	if seen[domain.VariantTuned] {
		err = multierr.Append(err, deps.Registry.Validate(axes))
	}
	if seen[domain.VariantGeneral] {
		err = multierr.Append(err, deps.Registry.ValidateFallback())
	}
	err = multierr.Append(err, deps.Seeds.Validate(repetitions))
	for _, f := range axes.Families {
		if _, serr := budget.SizeToken(f); serr != nil {
			err = multierr.Append(err, serr)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Generator{
		axes:        axes,
		repetitions: repetitions,
		variants:    append([]domain.Variant(nil), variants...),
		deps:        deps,
	}, nil
}

// Count is the number of jobs Jobs yields.
func (g *Generator) Count() int {
	return g.axes.Size() * g.repetitions * len(g.variants)
}

// Jobs returns the canonical sequence. Every call starts from the beginning.
// Iteration stops after the first resolution error.
func (g *Generator) Jobs() iter.Seq2[domain.Job, error] {
	return func(yield func(domain.Job, error) bool) {
		lens := g.axes.Lens()
		idx := make([]int, len(lens))
		for _, v := range g.variants {
			product := combin.NewCartesianGenerator(lens)
			for product.Next() {
				coord := g.axes.Coordinate(product.Product(idx))
				for rep := range g.repetitions {
					job, err := g.Resolve(coord, rep, v)
					if !yield(job, err) || err != nil {
						return
					}
				}
			}
		}
	}
}

// Resolve derives every field of the job identified by (coord, repetition, variant).
func (g *Generator) Resolve(coord domain.GridCoordinate, repetition int, v domain.Variant) (domain.Job, error) {
	seed, err := g.deps.Seeds.SeedFor(repetition)
	if err != nil {
		return domain.Job{}, err
	}
	limit, err := budget.TimeBudget(coord.Family, coord.ItemsPerCity, g.deps.RuntimeFactor)
	if err != nil {
		return domain.Job{}, err
	}
	params, err := g.deps.Registry.Lookup(coord.Family, coord.ItemsPerCity, coord.KnapsackType, v.Tuned())
	if err != nil {
		return domain.Job{}, err
	}

	return domain.Job{
		Coordinate: coord,
		Repetition: repetition,
		Variant:    v,
		InputPath:  g.deps.Paths.InputPath(coord),
		OutputPath: g.deps.Paths.OutputPath(coord, repetition, v),
		Seed:       seed,
		TimeBudget: limit,
		Params:     params,
	}, nil
}
