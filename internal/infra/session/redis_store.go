package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

const sessionKeyPrefix = "vault:session:"

type redisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) domain.SessionStore {
	return &redisStore{
		client: client,
		now:    time.Now,
	}
}

// Save stores the session until its ExpiresAt.
func (s *redisStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" || session.UserID == "" {
		return ErrInvalidSessionData
	}

	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(session)
	if err != nil {
		return ErrInvalidSessionData
	}

	return s.client.Set(ctx, sessionKeyPrefix+session.Token, data, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, ErrInvalidSessionData
	}

	return &session, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
