package observability

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"
)

// FlushTelemetry runs once before process exit. It writes the metrics
// textfile when metricsPath is set and then flushes buffered logs. Sync
// errors from a terminal or pipe on stderr are not reported.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, metricsPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []error
	if metricsPath != "" {
		if err := WriteMetrics(metricsPath); err != nil {
			errs = append(errs, err)
		}
	}
	if logger != nil {
		if err := logger.Sync(); err != nil && !unsyncableOutput(err) {
			errs = append(errs, fmt.Errorf("flush logs: %w", err))
		}
	}
	return errors.Join(errs...)
}

// unsyncableOutput reports errors fsync returns for character devices and
// pipes, where there is nothing to flush.
func unsyncableOutput(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}
