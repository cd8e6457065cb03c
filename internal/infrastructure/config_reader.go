package infrastructure

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"thop-experiments/internal/budget"
	"thop-experiments/internal/domain"
)

type YAMLConfigReader struct {
	logger *zap.Logger
	fs     *flag.FlagSet
	flags  *Flags
}

// NewYAMLConfigReader returns a reader; fs and flags may be nil when there
// are no command-line overrides.
func NewYAMLConfigReader(logger *zap.Logger, fs *flag.FlagSet, flags *Flags) *YAMLConfigReader {
	return &YAMLConfigReader{logger: logger, fs: fs, flags: flags}
}

// ReadConfig reads path (an empty path means built-in defaults only), applies
// explicitly set command-line flags and fills in defaults.
func (r *YAMLConfigReader) ReadConfig(path string) (*domain.Config, error) {
	var config domain.Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := decodeStrict(data, &config); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
		}
		r.logger.Debug("Config file loaded", zap.String("path", path))
	}

	// Применяем аргументы командной строки
	if r.fs != nil && r.flags != nil {
		applyCommandLineFlags(&config, r.fs, r.flags)
	}

	// Устанавливаем значения по умолчанию
	r.setDefaults(&config)

	return &config, nil
}

// decodeStrict rejects keys that have no matching field. An empty document
// leaves v untouched.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Flags holds command-line overrides for the config file.
type Flags struct {
	Workers       int
	RuntimeFactor string
	Repetitions   int
	LogLevel      string
	DryRun        bool
	PlanFile      string
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.IntVar(&f.Workers, "workers", 0, "Number of concurrent solver processes (default: cores - 2)")
	fs.StringVar(&f.RuntimeFactor, "runtime-factor", "", "Time budget scaling factor, e.g. 1x or 2.5x")
	fs.IntVar(&f.Repetitions, "repetitions", 0, "Repetitions per grid point")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Resolve every job without launching any solver")
	fs.StringVar(&f.PlanFile, "plan", "", "Write the command line of every job to this file")
	return f
}

func applyCommandLineFlags(config *domain.Config, fs *flag.FlagSet, f *Flags) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "workers":
			config.Workers = f.Workers
		case "runtime-factor":
			config.RuntimeFactor = f.RuntimeFactor
		case "repetitions":
			config.Repetitions = f.Repetitions
		case "log-level":
			config.LogLevel = f.LogLevel
		case "dry-run":
			config.DryRun = f.DryRun
		case "plan":
			config.PlanFile = f.PlanFile
		}
	})
}

// Validate checks the fields that the domain packages do not check themselves.
func Validate(config *domain.Config) error {
	if _, err := budget.ParseFactor(config.RuntimeFactor); err != nil {
		return err
	}
	if config.Workers <= 0 {
		return fmt.Errorf("%w: workers must be > 0 (got %d)", domain.ErrInvalidConfig, config.Workers)
	}
	if config.TunedBinary == "" || config.PlainBinary == "" {
		return fmt.Errorf("%w: solver binaries must be set", domain.ErrInvalidConfig)
	}
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", domain.ErrInvalidConfig, config.LogLevel)
	}
	return nil
}

func (r *YAMLConfigReader) setDefaults(config *domain.Config) {
	if config.InstancesRoot == "" {
		config.InstancesRoot = "../instances"
	}
	if config.SolutionsRoot == "" {
		config.SolutionsRoot = "../solutions"
	}
	if config.TunedBinary == "" {
		config.TunedBinary = "./acothop"
	}
	if config.PlainBinary == "" {
		config.PlainBinary = "./acothop"
	}
	if config.TunedDir == "" {
		config.TunedDir = "acothop*"
	}
	if config.PlainDir == "" {
		config.PlainDir = "acothop"
	}
	if config.RuntimeFactor == "" {
		config.RuntimeFactor = "1x"
	}
	if config.Repetitions == 0 {
		config.Repetitions = 10
	}
	if config.Workers == 0 {
		// GOMAXPROCS учитывает квоту контейнера (automaxprocs)
		config.Workers = domain.DefaultWorkers(runtime.GOMAXPROCS(0))
	}
	if len(config.Variants) == 0 {
		config.Variants = domain.DefaultVariants()
	}
	defaults := domain.DefaultAxes()
	if config.Axes.Families == nil {
		config.Axes.Families = defaults.Families
	}
	if config.Axes.ItemsPerCity == nil {
		config.Axes.ItemsPerCity = defaults.ItemsPerCity
	}
	if config.Axes.KnapsackTypes == nil {
		config.Axes.KnapsackTypes = defaults.KnapsackTypes
	}
	if config.Axes.KnapsackSizes == nil {
		config.Axes.KnapsackSizes = defaults.KnapsackSizes
	}
	if config.Axes.MaxTravelTime == nil {
		config.Axes.MaxTravelTime = defaults.MaxTravelTime
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
