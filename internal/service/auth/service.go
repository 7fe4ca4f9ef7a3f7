package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewService(users domain.UserRepository, sessions domain.SessionStore, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SignIn is called once the upstream identity provider has verified email.
// It finds or creates the user and opens a session.
func (s *Service) SignIn(ctx context.Context, email, name string) (*domain.Session, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: email is required", ErrInvalidCredentials)
	}

	user, err := s.users.FindOrCreateByEmail(ctx, email, strings.TrimSpace(name))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.InfoContext(ctx, "session created",
		slog.String("user_id", user.ID),
		slog.Time("expires_at", session.ExpiresAt),
	)

	return session, user, nil
}

// Authenticate resolves a session token to its user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if _, err := uuid.Parse(token); err != nil {
		return "", domain.ErrSessionNotFound
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", err
	}

	if !session.ExpiresAt.After(s.now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			slog.WarnContext(ctx, "failed to delete expired session",
				slog.String("error", err.Error()),
			)
		}
		return "", domain.ErrSessionNotFound
	}

	return session.UserID, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
