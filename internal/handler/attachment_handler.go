package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/attachment"
)

type AttachmentHandler struct {
	attachmentService *attachment.Service
}

func NewAttachmentHandler(attachmentService *attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

func (h *AttachmentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/items/:id/attachments", h.HandleList)
	rg.POST("/items/:id/attachments", h.HandleRequestUpload)
	rg.GET("/attachments/:id/download", h.HandleRequestDownload)
	rg.DELETE("/attachments/:id", h.HandleDelete)
}

type uploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=127"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

type attachmentResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"itemId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newAttachmentResponse(a domain.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:          a.ID,
		ItemID:      a.ItemID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
}

type uploadResponse struct {
	Attachment attachmentResponse `json:"attachment"`
	UploadURL  string             `json:"uploadUrl"`
	Method     string             `json:"method"`
	Headers    map[string]string  `json:"headers"`
	ExpiresAt  time.Time          `json:"expiresAt"`
}

type downloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AttachmentHandler) HandleList(c *gin.Context) {
	list, err := h.attachmentService.List(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]attachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, newAttachmentResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"attachments": out})
}

func (h *AttachmentHandler) HandleRequestUpload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ticket, err := h.attachmentService.RequestUpload(c.Request.Context(), currentUserID(c), c.Param("id"), req.FileName, req.ContentType, req.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, uploadResponse{
		Attachment: newAttachmentResponse(ticket.Attachment),
		UploadURL:  ticket.URL,
		Method:     ticket.Method,
		Headers:    ticket.Headers,
		ExpiresAt:  ticket.ExpiresAt,
	})
}

func (h *AttachmentHandler) HandleRequestDownload(c *gin.Context) {
	ticket, err := h.attachmentService.RequestDownload(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, downloadResponse{
		URL:       ticket.URL,
		ExpiresAt: ticket.ExpiresAt,
	})
}

func (h *AttachmentHandler) HandleDelete(c *gin.Context) {
	if err := h.attachmentService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
