package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/service/alert"
)

const runIDHeader = "X-Run-ID"

type AlertHandler struct {
	dispatcher *alert.Dispatcher
	now        func() time.Time
}

func NewAlertHandler(dispatcher *alert.Dispatcher) *AlertHandler {
	return &AlertHandler{
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Register mounts the dispatch trigger behind the shared scheduler token.
func (h *AlertHandler) Register(rg *gin.RouterGroup, dispatchToken string) {
	rg.POST("/alerts/dispatch", RequireDispatchToken(dispatchToken), h.HandleDispatch)
}

func (h *AlertHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	now := h.now()
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid from time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	resp, err := h.dispatcher.Dispatch(ctx, now.UTC(), c.GetHeader(runIDHeader))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
