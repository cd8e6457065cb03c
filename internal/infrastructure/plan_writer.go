package infrastructure

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
)

type TXTPlanWriter struct {
	logger *zap.Logger
}

func NewTXTPlanWriter(logger *zap.Logger) *TXTPlanWriter {
	return &TXTPlanWriter{logger: logger}
}

// WritePlan writes one command line per row.
func (w *TXTPlanWriter) WritePlan(filename string, lines []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	w.logger.Debug("Plan flushed", zap.String("file", filename))
	return file.Sync()
}
