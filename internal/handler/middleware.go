package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/service/auth"
)

const (
	userIDKey           = "vault.user_id"
	sessionTokenKey     = "vault.session_token"
	DispatchTokenHeader = "X-Dispatch-Token"
)

// RequireSession resolves the bearer token to a user and rejects the request with 401 otherwise.
func RequireSession(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondError(c, http.StatusUnauthorized, "unauthorized", "bearer token required")
			return
		}

		userID, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		setSession(c, userID, token)
		c.Next()
	}
}

// RequireDispatchToken guards scheduler endpoints. An empty token disables the check.
func RequireDispatchToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got := c.GetHeader(DispatchTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			slog.WarnContext(c.Request.Context(), "dispatch token rejected",
				slog.String("path", c.Request.URL.Path),
			)
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid dispatch token")
			return
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func setSession(c *gin.Context, userID, token string) {
	c.Set(userIDKey, userID)
	c.Set(sessionTokenKey, token)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func currentToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}
