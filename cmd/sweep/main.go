package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"thop-experiments/internal/app"
	"thop-experiments/internal/budget"
	"thop-experiments/internal/domain"
	"thop-experiments/internal/grid"
	"thop-experiments/internal/infrastructure"
	"thop-experiments/internal/paths"
	"thop-experiments/internal/registry"
	"thop-experiments/internal/seeds"
	"thop-experiments/internal/solver"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (empty: built-in defaults)")
	flags := infrastructure.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	// Инициализация логгера
	logger := initLogger("info")
	defer func() { _ = logger.Sync() }()

	// GOMAXPROCS по квоте CPU контейнера, до расчёта числа воркеров
	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Warn("Failed to set GOMAXPROCS", zap.Error(err))
	}

	// Чтение конфигурации
	configReader := infrastructure.NewYAMLConfigReader(logger, fs, flags)
	config, err := configReader.ReadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to read config", zap.Error(err))
	}
	if err := infrastructure.Validate(config); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	// Обновляем уровень логирования
	logger = initLogger(config.LogLevel, config.LogFile)

	reg := registry.Default()
	if config.RegistryFile != "" {
		reg, err = infrastructure.NewYAMLRegistryReader(logger).ReadRegistry(config.RegistryFile, reg)
		if err != nil {
			logger.Fatal("Failed to read registry file", zap.Error(err))
		}
	}

	factor, err := budget.ParseFactor(config.RuntimeFactor)
	if err != nil {
		logger.Fatal("Invalid runtime factor", zap.Error(err))
	}

	resolver, err := paths.NewResolver(config.InstancesRoot, config.SolutionsRoot, config.TunedDir, config.PlainDir)
	if err != nil {
		logger.Fatal("Invalid output layout", zap.Error(err))
	}

	// Проверка сетки до запуска первой задачи
	generator, err := grid.NewGenerator(config.Axes, config.Repetitions, config.Variants, grid.Deps{
		Registry:      reg,
		Seeds:         seeds.Default(),
		Paths:         resolver,
		RuntimeFactor: factor,
	})
	if err != nil {
		logger.Fatal("Sweep configuration rejected", zap.Error(err))
	}

	host, err := infrastructure.CollectHostInfo()
	if err != nil {
		logger.Warn("Host information incomplete", zap.Error(err))
	}
	logger.Info("Host",
		zap.String("platform", host.Platform),
		zap.String("cpu", host.CPUModel),
		zap.Int("logical_cores", host.LogicalCores),
		zap.Uint64("memory_gb", host.MemoryGB))

	if !config.DryRun {
		if len(config.Prebuild) > 0 {
			if err := infrastructure.Prebuild(context.Background(), logger, "", config.Prebuild, os.Stderr); err != nil {
				logger.Fatal("Prebuild failed", zap.Error(err))
			}
		}
		if config.WriteManifest() {
			manifest := infrastructure.NewManifest(config, host, generator.Count())
			if _, err := infrastructure.NewYAMLManifestWriter(logger).WriteManifest(config.SolutionsRoot, manifest); err != nil {
				logger.Fatal("Failed to write manifest", zap.Error(err))
			}
			logger = logger.With(zap.String("run_id", manifest.RunID))
		}
	}

	binaries := solver.Binaries{Tuned: config.TunedBinary, Plain: config.PlainBinary}
	invoker := infrastructure.NewProcessInvoker(logger, binaries, "", os.Stdout, os.Stderr)
	dispatcher := app.NewDispatcher(logger, config.Workers, invoker, config.LaunchInterval)
	sweep := app.NewSweep(logger, generator, dispatcher, binaries,
		infrastructure.NewTXTPlanWriter(logger),
		infrastructure.NewOutputDirs(logger),
		outputDirs(resolver, config.Axes.Families, config.Variants))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := sweep.Run(ctx, app.SweepOptions{PlanFile: config.PlanFile, DryRun: config.DryRun})
	if err != nil {
		logger.Fatal("Sweep aborted", zap.Error(err), zap.Int64("launched", stats.Launched))
	}

	logger.Info("Sweep completed successfully")
}

func outputDirs(r *paths.Resolver, families []string, variants []domain.Variant) []string {
	dirs := make([]string, 0, len(families)*len(variants))
	for _, v := range variants {
		for _, f := range families {
			dirs = append(dirs, r.OutputDir(f, v))
		}
	}
	return dirs
}

// initLogger initializes the logger with the specified level and log file name.
func initLogger(level string, logfileName ...string) *zap.Logger {
	config := zap.NewProductionConfig()

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	outputPath := []string{"stderr"}
	for _, item := range logfileName {
		if item != "" {
			outputPath = append(outputPath, item)
		}
	}

	config.OutputPaths = outputPath
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "t"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	config.DisableCaller = false

	logger, err := config.Build()
	if err != nil {
		return zap.NewExample()
	}
	return logger
}
