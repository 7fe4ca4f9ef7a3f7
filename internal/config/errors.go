package config

import (
	"errors"
	"fmt"
)

var (
	ErrRedisAddrMissing          = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB            = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidRedisPoolSize      = errors.New("REDIS_POOL_SIZE must be a non-negative integer")
	ErrDatabaseURLMissing        = errors.New("DATABASE_URL is required")
	ErrUnsupportedDatabaseDriver = errors.New("DATABASE_DRIVER must be postgres or sqlite")
	ErrInvalidAttachmentMaxBytes = errors.New("ATTACHMENT_MAX_BYTES must be a positive integer")
	ErrInvalidAlertThresholds    = errors.New("ALERT_THRESHOLDS must be a comma separated list of non-negative integers")
	ErrInvalidDuration           = errors.New("invalid duration")
)

type InvalidDurationError struct {
	Key   string
	Value string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%s: %q is not a positive duration", e.Key, e.Value)
}

func (e *InvalidDurationError) Unwrap() error {
	return ErrInvalidDuration
}
