package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *domain.MockUserRepository, *domain.MockSessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := domain.NewMockUserRepository(ctrl)
	sessions := domain.NewMockSessionStore(ctrl)
	svc := NewService(users, sessions, 24*time.Hour)
	svc.now = func() time.Time { return fixedNow }
	return svc, users, sessions
}

func TestService_SignIn(t *testing.T) {
	svc, users, sessions := newTestService(t)

	users.EXPECT().FindOrCreateByEmail(gomock.Any(), "jo@example.com", "Jo").Return(&domain.User{ID: "user-1", Email: "jo@example.com"}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.Session) error {
		if s.UserID != "user-1" {
			t.Errorf("UserID = %q", s.UserID)
		}
		if _, err := uuid.Parse(s.Token); err != nil {
			t.Errorf("token %q is not a uuid", s.Token)
		}
		if !s.ExpiresAt.Equal(fixedNow.Add(24 * time.Hour)) {
			t.Errorf("ExpiresAt = %v", s.ExpiresAt)
		}
		return nil
	})

	session, user, err := svc.SignIn(context.Background(), "  Jo@Example.com ", " Jo ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" || session.Token == "" {
		t.Errorf("unexpected result %+v %+v", session, user)
	}
}

func TestService_SignInRejectsMissingEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, _, err := svc.SignIn(context.Background(), email, ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("SignIn(%q): got %v, want ErrInvalidCredentials", email, err)
		}
	}
}

func TestService_Authenticate(t *testing.T) {
	token := uuid.NewString()

	tests := []struct {
		name      string
		token     string
		setup     func(*domain.MockSessionStore)
		wantUser  string
		wantError error
	}{
		{
			name:  "valid",
			token: token,
			setup: func(s *domain.MockSessionStore) {
				s.EXPECT().Get(gomock.Any(), token).Return(&domain.Session{Token: token, UserID: "user-1", ExpiresAt: fixedNow.Add(time.Hour)}, nil)
			},
			wantUser: "user-1",
		},
		{
			name:  "expired",
			token: token,
			setup: func(s *domain.MockSessionStore) {
				s.EXPECT().Get(gomock.Any(), token).Return(&domain.Session{Token: token, UserID: "user-1", ExpiresAt: fixedNow}, nil)
				s.EXPECT().Delete(gomock.Any(), token).Return(nil)
			},
			wantError: domain.ErrSessionNotFound,
		},
		{
			name:  "unknown",
			token: token,
			setup: func(s *domain.MockSessionStore) {
				s.EXPECT().Get(gomock.Any(), token).Return(nil, domain.ErrSessionNotFound)
			},
			wantError: domain.ErrSessionNotFound,
		},
		{
			name:      "malformed",
			token:     "abc",
			setup:     func(*domain.MockSessionStore) {},
			wantError: domain.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sessions := newTestService(t)
			tt.setup(sessions)

			userID, err := svc.Authenticate(context.Background(), tt.token)
			if !errors.Is(err, tt.wantError) {
				t.Fatalf("got error %v, want %v", err, tt.wantError)
			}
			if userID != tt.wantUser {
				t.Errorf("userID = %q, want %q", userID, tt.wantUser)
			}
		})
	}
}

func TestService_SignOut(t *testing.T) {
	svc, _, sessions := newTestService(t)

	sessions.EXPECT().Delete(gomock.Any(), "token").Return(nil)

	if err := svc.SignOut(context.Background(), "token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
