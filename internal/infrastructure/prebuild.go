package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"thop-experiments/internal/domain"
)

// Prebuild runs each command in dir, in order, stopping at the first failure.
func Prebuild(ctx context.Context, logger *zap.Logger, dir string, commands [][]string, out io.Writer) error {
	for _, argv := range commands {
		if len(argv) == 0 {
			return fmt.Errorf("%w: empty prebuild command", domain.ErrInvalidConfig)
		}
		logger.Info("Running prebuild command", zap.String("cmd", strings.Join(argv, " ")))

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = dir
		cmd.Stdout = out
		cmd.Stderr = out
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("prebuild %q: %w", strings.Join(argv, " "), err)
		}
	}
	return nil
}
