package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/auth"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *domain.MockUserRepository, *domain.MockSessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := domain.NewMockUserRepository(ctrl)
	sessions := domain.NewMockSessionStore(ctrl)

	h := NewAuthHandler(auth.NewService(users, sessions, time.Hour))

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.Register(v1, v1.Group("", withUser("user-1")))
	return r, users, sessions
}

func TestAuthHandler_SignIn(t *testing.T) {
	r, users, sessions := newAuthRouter(t)

	users.EXPECT().FindOrCreateByEmail(gomock.Any(), "jo@example.com", "Jo").Return(&domain.User{ID: "user-1", Email: "jo@example.com", Name: "Jo"}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/sessions", map[string]string{"email": "jo@example.com", "name": "Jo"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[sessionResponse](t, w)
	if resp.Token == "" || resp.User.ID != "user-1" || resp.ExpiresAt.IsZero() {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_SignInInvalidEmail(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/sessions", map[string]string{"email": "nope"})
	assertError(t, w, http.StatusBadRequest, "validation_error")
}

func TestAuthHandler_SignOut(t *testing.T) {
	r, _, sessions := newAuthRouter(t)

	sessions.EXPECT().Delete(gomock.Any(), "test-token").Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/auth/sessions", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
}

func TestTemplateHandler_List(t *testing.T) {
	r := newRouter("user-1", NewTemplateHandler().Register)

	w := doJSON(t, r, http.MethodGet, "/api/v1/templates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	resp := decode[map[string][]domain.Template](t, w)
	if len(resp["templates"]) != len(domain.Templates()) {
		t.Errorf("got %d templates, want %d", len(resp["templates"]), len(domain.Templates()))
	}
}
