package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var ErrPersistFailed = errors.New("persist changes failed")

// persistFailure logs a failed store write and wraps it as ErrPersistFailed.
func persistFailure(logger *slog.Logger, operation string, err error) error {
	logger.Error("persistence write failed", slog.String("operation", operation), slog.Any("error", err))
	return fmt.Errorf("%w: %v", ErrPersistFailed, err)
}

func serviceLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func utcNow() time.Time {
	return time.Now().UTC()
}
