package infrastructure

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

type OutputDirs struct {
	logger *zap.Logger
}

func NewOutputDirs(logger *zap.Logger) *OutputDirs {
	return &OutputDirs{logger: logger}
}

// Prepare creates every directory, including parents. Existing ones are kept.
func (o *OutputDirs) Prepare(dirs []string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
		o.logger.Debug("Output directory ready", zap.String("dir", d))
	}
	return nil
}
