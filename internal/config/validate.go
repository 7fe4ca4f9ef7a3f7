package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Alert == nil || len(cfg.Alert.Thresholds) == 0 {
		errs = append(errs, ErrInvalidAlertThresholds)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
