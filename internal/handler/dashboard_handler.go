package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService *dashboard.Service
	now              func() time.Time
}

func NewDashboardHandler(dashboardService *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", h.HandleStats)
	rg.GET("/notifications", h.HandleNotifications)
}

func (h *DashboardHandler) HandleStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), currentUserID(c), h.now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

type notificationsResponse struct {
	Items []domain.NotificationItem `json:"items"`
	Count int                       `json:"count"`
}

func (h *DashboardHandler) HandleNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "limit must be an integer")
			return
		}
		limit = parsed
	}

	items, err := h.dashboardService.Upcoming(c.Request.Context(), currentUserID(c), h.now(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notificationsResponse{Items: items, Count: len(items)})
}
