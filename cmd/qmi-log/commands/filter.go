package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/freedesktop/libqmi/pkg/log"
)

// RunFilter copies the events of path matching filter into a new capture
// at output and returns how many were copied.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Close()
			return logger.Written(), fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	if err := logger.Close(); err != nil {
		return logger.Written(), err
	}
	return logger.Written(), logger.Err()
}
