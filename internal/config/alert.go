package config

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	alertHorizonDaysEnv = "ALERT_HORIZON_DAYS"
	alertThresholdsEnv  = "ALERT_THRESHOLDS"
	alertLedgerTTLEnv   = "ALERT_LEDGER_TTL"

	defaultAlertHorizonDays = 30
	defaultAlertLedgerTTL   = 72 * time.Hour
)

var defaultAlertThresholds = []int{30, 7, 1, 0}

type AlertConfig struct {
	HorizonDays int
	// Thresholds are the day counts that trigger an alert, sorted descending.
	Thresholds    []int
	LedgerTTL     time.Duration
	DispatchToken string
}

func LoadAlertConfig() (*AlertConfig, error) {
	horizon := defaultAlertHorizonDays
	if v := os.Getenv(alertHorizonDaysEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	thresholds := slices.Clone(defaultAlertThresholds)
	if raw := os.Getenv(alertThresholdsEnv); raw != "" {
		parsed, err := parseThresholds(raw)
		if err != nil {
			return nil, err
		}
		thresholds = parsed
	}

	ledgerTTL, err := durationFromEnv(alertLedgerTTLEnv, defaultAlertLedgerTTL)
	if err != nil {
		return nil, err
	}

	return &AlertConfig{
		HorizonDays:   horizon,
		Thresholds:    thresholds,
		LedgerTTL:     ledgerTTL,
		DispatchToken: os.Getenv(dispatchTokenEnv),
	}, nil
}

func (c *AlertConfig) Horizon() time.Duration {
	return time.Duration(c.HorizonDays) * 24 * time.Hour
}

func parseThresholds(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	thresholds := make([]int, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, ErrInvalidAlertThresholds
		}
		thresholds = append(thresholds, v)
	}

	if len(thresholds) == 0 {
		return nil, ErrInvalidAlertThresholds
	}

	slices.Sort(thresholds)
	slices.Reverse(thresholds)

	return slices.Compact(thresholds), nil
}
