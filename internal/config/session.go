package config

import "time"

const (
	sessionTTLEnv = "SESSION_TTL"

	defaultSessionTTL = 30 * 24 * time.Hour
)

type SessionConfig struct {
	TTL time.Duration
}

func LoadSessionConfig() (*SessionConfig, error) {
	ttl, err := durationFromEnv(sessionTTLEnv, defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	return &SessionConfig{TTL: ttl}, nil
}
