package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

func (h *TemplateHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/templates", h.HandleList)
}

func (h *TemplateHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": domain.Templates()})
}
