package session

import "errors"

var (
	ErrInvalidSessionData = errors.New("invalid session data")
	ErrSessionExpired     = errors.New("session already expired")
)
