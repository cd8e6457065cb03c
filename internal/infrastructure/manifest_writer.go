package infrastructure

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"thop-experiments/internal/domain"
)

// Manifest records how a sweep was launched, next to its solutions.
type Manifest struct {
	RunID         string           `yaml:"run_id"`
	Started       time.Time        `yaml:"started"`
	Host          HostInfo         `yaml:"host"`
	Workers       int              `yaml:"workers"`
	Jobs          int              `yaml:"jobs"`
	Repetitions   int              `yaml:"repetitions"`
	RuntimeFactor string           `yaml:"runtime_factor"`
	TunedBinary   string           `yaml:"tuned_binary"`
	PlainBinary   string           `yaml:"plain_binary"`
	Variants      []domain.Variant `yaml:"variants"`
	Axes          domain.Axes      `yaml:"axes"`
}

// NewManifest stamps a fresh run id and start time.
func NewManifest(config *domain.Config, host HostInfo, jobs int) Manifest {
	return Manifest{
		RunID:         uuid.New().String(),
		Started:       time.Now().UTC(),
		Host:          host,
		Workers:       config.Workers,
		Jobs:          jobs,
		Repetitions:   config.Repetitions,
		RuntimeFactor: config.RuntimeFactor,
		TunedBinary:   config.TunedBinary,
		PlainBinary:   config.PlainBinary,
		Variants:      config.Variants,
		Axes:          config.Axes,
	}
}

type YAMLManifestWriter struct {
	logger *zap.Logger
}

func NewYAMLManifestWriter(logger *zap.Logger) *YAMLManifestWriter {
	return &YAMLManifestWriter{logger: logger}
}

// WriteManifest writes run-<id>.yaml into dir and returns its path.
func (w *YAMLManifestWriter) WriteManifest(dir string, m Manifest) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "run-"+m.RunID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	w.logger.Info("Manifest written", zap.String("file", path), zap.String("run_id", m.RunID))
	return path, nil
}
