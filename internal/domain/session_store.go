package domain

import "context"

//go:generate mockgen -source=session_store.go -destination=session_store_mock.go -package=domain

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
