// Package registry maps instance classes to solver parameter configurations.
package registry

import (
	"fmt"

	"go.uber.org/multierr"

	"thop-experiments/internal/domain"
)

// Registry is read-only after construction.
type Registry struct {
	tuned    map[domain.RegistryKey]domain.ParameterConfiguration
	fallback domain.ParameterConfiguration
}

// New builds a registry from explicit entries and the fallback configuration.
func New(entries map[domain.RegistryKey]domain.ParameterConfiguration, fallback domain.ParameterConfiguration) *Registry {
	r := &Registry{
		tuned:    make(map[domain.RegistryKey]domain.ParameterConfiguration, len(entries)),
		fallback: clone(fallback),
	}
	for k, v := range entries {
		r.tuned[k] = clone(v)
	}
	return r
}

// Default returns the registry with the built-in tuned table.
func Default() *Registry {
	return New(tuned, general)
}

// With returns a copy of r where the given entries replace existing ones.
// A nil fallback keeps the current one.
func (r *Registry) With(entries map[domain.RegistryKey]domain.ParameterConfiguration, fallback domain.ParameterConfiguration) *Registry {
	merged := make(map[domain.RegistryKey]domain.ParameterConfiguration, len(r.tuned)+len(entries))
	for k, v := range r.tuned {
		merged[k] = v
	}
	for k, v := range entries {
		merged[k] = v
	}
	if fallback == nil {
		fallback = r.fallback
	}
	return New(merged, fallback)
}

// Len returns the number of tuned entries.
func (r *Registry) Len() int {
	return len(r.tuned)
}

// Fallback returns the shared configuration used for untuned runs.
func (r *Registry) Fallback() domain.ParameterConfiguration {
	return r.fallback
}

// Lookup resolves the configuration for an instance class. With useTuned
// unset the fallback is returned whatever the other arguments are.
func (r *Registry) Lookup(family string, itemsPerCity int, knapsackType string, useTuned bool) (domain.ParameterConfiguration, error) {
	if !useTuned {
		return r.fallback, nil
	}
	key := domain.RegistryKey{Family: family, ItemsPerCity: itemsPerCity, KnapsackType: knapsackType}
	cfg, ok := r.tuned[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingConfiguration, key)
	}
	return cfg, nil
}

// ValidateFallback reports an empty fallback configuration.
func (r *Registry) ValidateFallback() error {
	if len(r.fallback) == 0 {
		return fmt.Errorf("%w: fallback", domain.ErrMissingConfiguration)
	}
	return nil
}

// Validate checks that every instance class the axes can produce has a tuned
// entry. All missing keys are reported together.
func (r *Registry) Validate(axes domain.Axes) error {
	var err error
	for _, family := range axes.Families {
		for _, items := range axes.ItemsPerCity {
			for _, kt := range axes.KnapsackTypes {
				if _, lerr := r.Lookup(family, items, kt, true); lerr != nil {
					err = multierr.Append(err, lerr)
				}
			}
		}
	}
	return err
}

func clone(p domain.ParameterConfiguration) domain.ParameterConfiguration {
	if p == nil {
		return nil
	}
	out := make(domain.ParameterConfiguration, len(p))
	copy(out, p)
	return out
}
