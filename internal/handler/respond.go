package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/auth"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

// respondServiceError maps service and domain errors to HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrAttachmentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrInvalidItem),
		errors.Is(err, domain.ErrInvalidAttachment),
		errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		respondError(c, http.StatusUnauthorized, "unauthorized", "session is missing or expired")
	case errors.Is(err, domain.ErrStorageDisabled):
		respondError(c, http.StatusServiceUnavailable, "storage_disabled", "attachments are not available")
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// respondBindError reports request decoding and binding-tag failures as 400.
func respondBindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "request validation failed",
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
	)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respondError(c, http.StatusBadRequest, "validation_error", describeValidation(verrs))
	case errors.Is(err, io.EOF):
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required")
	default:
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	}
}

func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
