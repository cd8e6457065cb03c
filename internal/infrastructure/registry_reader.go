package infrastructure

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"thop-experiments/internal/domain"
	"thop-experiments/internal/registry"
)

// registryFile is the on-disk form of tuned parameter configurations:
//
//	fallback:
//	  - {flag: --ants, value: "196"}
//	entries:
//	  - family: eil51
//	    items_per_city: 1
//	    knapsack_type: bsc
//	    params:
//	      - {flag: --ants, value: "100"}
type registryFile struct {
	Fallback domain.ParameterConfiguration `yaml:"fallback"`
	Entries  []registryEntry               `yaml:"entries"`
}

type registryEntry struct {
	Family       string                        `yaml:"family"`
	ItemsPerCity int                           `yaml:"items_per_city"`
	KnapsackType string                        `yaml:"knapsack_type"`
	Params       domain.ParameterConfiguration `yaml:"params"`
}

type YAMLRegistryReader struct {
	logger *zap.Logger
}

func NewYAMLRegistryReader(logger *zap.Logger) *YAMLRegistryReader {
	return &YAMLRegistryReader{logger: logger}
}

// ReadRegistry overlays the entries in path on base. Entries of the file
// replace built-in ones with the same key; a missing fallback keeps base's.
func (r *YAMLRegistryReader) ReadRegistry(path string, base *registry.Registry) (*registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file registryFile
	if err := decodeStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
	}
	if file.Fallback != nil && len(file.Fallback) == 0 {
		return nil, fmt.Errorf("%w: %s: fallback is empty", domain.ErrInvalidConfig, path)
	}

	entries := make(map[domain.RegistryKey]domain.ParameterConfiguration, len(file.Entries))
	for i, e := range file.Entries {
		key := domain.RegistryKey{Family: e.Family, ItemsPerCity: e.ItemsPerCity, KnapsackType: e.KnapsackType}
		if len(e.Params) == 0 {
			return nil, fmt.Errorf("%w: %s: entry %d (%s) has no params", domain.ErrInvalidConfig, path, i, key)
		}
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate entry %s", domain.ErrInvalidConfig, path, key)
		}
		entries[key] = e.Params
	}

	r.logger.Info("Registry overrides loaded",
		zap.String("file", path),
		zap.Int("entries", len(entries)),
		zap.Bool("fallback", len(file.Fallback) > 0))

	return base.With(entries, file.Fallback), nil
}
