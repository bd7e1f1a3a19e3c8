package client

import (
	"context"
	"errors"
	"net"
)

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as the weatherApiErrorsTotal label.
const (
	ErrorCategoryInvalidURL ErrorCategory = "invalid_url"
	ErrorCategoryTimeout    ErrorCategory = "timeout"
	ErrorCategoryNetwork    ErrorCategory = "network"
	ErrorCategoryDecode     ErrorCategory = "decode"
	ErrorCategoryUnknown    ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrInvalidBaseURL) {
		return ErrorCategoryInvalidURL
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorCategoryDecode
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorCategoryTimeout
	}

	if errors.Is(err, ErrTransport) {
		return ErrorCategoryNetwork
	}

	return ErrorCategoryUnknown
}
