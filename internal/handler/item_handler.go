package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/item"
)

type ItemHandler struct {
	itemService *item.Service
	now         func() time.Time
}

func NewItemHandler(itemService *item.Service) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		now:         time.Now,
	}
}

func (h *ItemHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/items", h.HandleList)
	rg.POST("/items", h.HandleCreate)
	rg.GET("/items/:id", h.HandleGet)
	rg.PUT("/items/:id", h.HandleUpdate)
	rg.DELETE("/items/:id", h.HandleDelete)
}

type itemRequest struct {
	Name           string            `json:"name" binding:"required,max=200"`
	Category       *string           `json:"category" binding:"omitempty,max=100"`
	ItemClass      string            `json:"itemClass" binding:"omitempty,oneof=document subscription"`
	TemplateKey    string            `json:"templateKey" binding:"omitempty,max=64"`
	Fields         map[string]string `json:"fields" binding:"omitempty,max=50,dive,keys,required,max=64,endkeys,max=500"`
	Notes          string            `json:"notes" binding:"max=4000"`
	ExpirationDate *isoDate          `json:"expirationDate"`
	RenewalDate    *isoDate          `json:"renewalDate"`
	Price          *float64          `json:"price" binding:"omitempty,gte=0"`
	Currency       string            `json:"currency" binding:"omitempty,len=3,alpha"`
	BillingCycle   *string           `json:"billingCycle" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
}

func (r *itemRequest) toDomain(userID, id string) *domain.Item {
	it := &domain.Item{
		ID:             id,
		UserID:         userID,
		Name:           r.Name,
		Category:       r.Category,
		Class:          domain.ItemClass(r.ItemClass),
		TemplateKey:    r.TemplateKey,
		Fields:         r.Fields,
		Notes:          r.Notes,
		ExpirationDate: r.ExpirationDate.timePtr(),
		RenewalDate:    r.RenewalDate.timePtr(),
		Price:          r.Price,
		Currency:       r.Currency,
	}
	if r.BillingCycle != nil {
		cycle := domain.BillingCycle(*r.BillingCycle)
		it.BillingCycle = &cycle
	}
	return it
}

type itemResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Category       string               `json:"category"`
	ItemClass      domain.ItemClass     `json:"itemClass"`
	TemplateKey    string               `json:"templateKey,omitempty"`
	Fields         map[string]string    `json:"fields,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	ExpirationDate *time.Time           `json:"expirationDate"`
	RenewalDate    *time.Time           `json:"renewalDate"`
	Price          *float64             `json:"price"`
	Currency       string               `json:"currency,omitempty"`
	BillingCycle   *domain.BillingCycle `json:"billingCycle"`
	Status         domain.Status        `json:"status,omitempty"`
	DaysLeft       *int                 `json:"daysLeft"`
	Urgency        domain.Urgency       `json:"urgency,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func newItemResponse(it domain.Item, c *domain.Classification) itemResponse {
	resp := itemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Category:       it.CategoryLabel(),
		ItemClass:      it.Class,
		TemplateKey:    it.TemplateKey,
		Fields:         it.Fields,
		Notes:          it.Notes,
		ExpirationDate: it.ExpirationDate,
		RenewalDate:    it.RenewalDate,
		Price:          it.Price,
		Currency:       it.Currency,
		BillingCycle:   it.BillingCycle,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
	if !resp.ItemClass.IsValid() {
		resp.ItemClass = domain.ItemClassDocument
	}
	if c != nil {
		resp.Status = c.Status
		resp.DaysLeft = c.DaysLeft
		resp.Urgency = c.Urgency
	}
	return resp
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Count int            `json:"count"`
}

func (h *ItemHandler) HandleList(c *gin.Context) {
	filter := domain.ItemFilter{
		Category: c.Query("category"),
		Status:   domain.Status(c.Query("status")),
	}
	if raw := c.Query("class"); raw != "" {
		class, err := domain.ParseItemClass(raw)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		filter.Class = class
	}

	details, err := h.itemService.List(c.Request.Context(), currentUserID(c), filter, h.now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]itemResponse, 0, len(details))
	for _, d := range details {
		items = append(items, newItemResponse(d.Item, d.Classification))
	}

	c.JSON(http.StatusOK, itemListResponse{Items: items, Count: len(items)})
}

func (h *ItemHandler) HandleCreate(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.itemService.Create(c.Request.Context(), req.toDomain(currentUserID(c), ""))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondDetail(c, http.StatusCreated, *created)
}

func (h *ItemHandler) HandleGet(c *gin.Context) {
	detail, err := h.itemService.Get(c.Request.Context(), currentUserID(c), c.Param("id"), h.now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newItemResponse(detail.Item, detail.Classification))
}

func (h *ItemHandler) HandleUpdate(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.itemService.Update(c.Request.Context(), req.toDomain(currentUserID(c), c.Param("id")))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.respondDetail(c, http.StatusOK, *updated)
}

func (h *ItemHandler) HandleDelete(c *gin.Context) {
	id := c.Param("id")
	if err := h.itemService.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}

	slog.DebugContext(c.Request.Context(), "item delete handled",
		slog.String("item_id", id),
	)

	c.Status(http.StatusNoContent)
}

// respondDetail classifies a freshly written item so the response matches a subsequent GET.
func (h *ItemHandler) respondDetail(c *gin.Context, status int, it domain.Item) {
	classification, err := h.itemService.Classify(it, h.now())
	if err != nil {
		c.JSON(status, newItemResponse(it, nil))
		return
	}
	c.JSON(status, newItemResponse(it, &classification))
}
