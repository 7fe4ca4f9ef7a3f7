package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/item"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

func newItemRouter(t *testing.T) (*gin.Engine, *domain.MockItemRepository, *domain.MockObjectStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := domain.NewMockItemRepository(ctrl)
	storage := domain.NewMockObjectStorage(ctrl)

	h := NewItemHandler(item.NewService(repo, storage, lifecycle.NewClassifier(), nil))
	h.now = func() time.Time { return fixedNow }

	return newRouter("user-1", h.Register), repo, storage
}

func TestItemHandler_Create(t *testing.T) {
	r, repo, _ := newItemRouter(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, it *domain.Item) error {
		if it.UserID != "user-1" {
			t.Errorf("UserID = %q", it.UserID)
		}
		it.ID = "item-1"
		it.CreatedAt = fixedNow
		it.UpdatedAt = fixedNow
		return nil
	})

	w := doJSON(t, r, http.MethodPost, "/api/v1/items", map[string]any{
		"name":           "Passport",
		"templateKey":    "passport",
		"fields":         map[string]string{"number": "X123", "country": "DE"},
		"expirationDate": "2025-03-15",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[map[string]any](t, w)
	if resp["id"] != "item-1" || resp["itemClass"] != "document" || resp["category"] != "Identity" {
		t.Errorf("unexpected body %v", resp)
	}
	if resp["status"] != "expiring" || resp["urgency"] != "high" || resp["daysLeft"] != float64(5) {
		t.Errorf("unexpected classification in %v", resp)
	}
	if resp["expirationDate"] != "2025-03-15T00:00:00Z" {
		t.Errorf("expirationDate = %v", resp["expirationDate"])
	}
}

func TestItemHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing body", body: nil},
		{name: "missing name", body: map[string]any{"itemClass": "document"}},
		{name: "unknown class", body: map[string]any{"name": "x", "itemClass": "car"}},
		{name: "unknown cycle", body: map[string]any{"name": "x", "itemClass": "subscription", "billingCycle": "daily"}},
		{name: "negative price", body: map[string]any{"name": "x", "itemClass": "subscription", "price": -5}},
		{name: "bad currency", body: map[string]any{"name": "x", "currency": "EURO"}},
		{name: "bad date", body: map[string]any{"name": "x", "expirationDate": "next tuesday"}},
		{name: "price on document", body: map[string]any{"name": "x", "price": 5}},
		{name: "unknown template", body: map[string]any{"name": "x", "templateKey": "spaceship"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newItemRouter(t)

			w := doJSON(t, r, http.MethodPost, "/api/v1/items", tt.body)
			assertError(t, w, http.StatusBadRequest, "validation_error")
		})
	}
}

func TestItemHandler_GetNotFound(t *testing.T) {
	r, repo, _ := newItemRouter(t)

	repo.EXPECT().Get(gomock.Any(), "user-1", "missing").Return(nil, domain.ErrItemNotFound)

	w := doJSON(t, r, http.MethodGet, "/api/v1/items/missing", nil)
	assertError(t, w, http.StatusNotFound, "not_found")
}

func TestItemHandler_GetUndated(t *testing.T) {
	r, repo, _ := newItemRouter(t)

	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1", Name: "Lease"}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/items/item-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	resp := decode[map[string]any](t, w)
	if resp["status"] != "active" || resp["urgency"] != "low" {
		t.Errorf("unexpected body %v", resp)
	}
	if v, ok := resp["daysLeft"]; !ok || v != nil {
		t.Errorf("daysLeft should be present and null, got %v", v)
	}
	if resp["category"] != domain.DefaultCategory || resp["itemClass"] != "document" {
		t.Errorf("unexpected defaults %v", resp)
	}
}

func TestItemHandler_ListFilters(t *testing.T) {
	r, repo, _ := newItemRouter(t)

	soon := fixedNow.Add(48 * time.Hour)
	repo.EXPECT().
		ListByUser(gomock.Any(), "user-1", domain.ItemFilter{Class: domain.ItemClassDocument, Category: "Identity", Status: domain.StatusExpiring}).
		Return([]domain.Item{{ID: "a", ExpirationDate: &soon}, {ID: "b"}}, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/items?class=Document&category=Identity&status=expiring", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[itemListResponse](t, w)
	if resp.Count != 1 || resp.Items[0].ID != "a" {
		t.Errorf("unexpected list %+v", resp)
	}
}

func TestItemHandler_ListRejectsBadClass(t *testing.T) {
	r, _, _ := newItemRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/items?class=vehicle", nil)
	assertError(t, w, http.StatusBadRequest, "validation_error")
}

func TestItemHandler_Update(t *testing.T) {
	r, repo, _ := newItemRouter(t)

	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1", UserID: "user-1", CreatedAt: fixedNow}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, it *domain.Item) error {
		if it.ID != "item-1" || it.Name != "Gym" || it.Class != domain.ItemClassSubscription {
			t.Errorf("unexpected item %+v", it)
		}
		return nil
	})

	w := doJSON(t, r, http.MethodPut, "/api/v1/items/item-1", map[string]any{
		"name":         "Gym",
		"itemClass":    "subscription",
		"price":        29.9,
		"billingCycle": "monthly",
		"renewalDate":  "2025-05-01T00:00:00Z",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	resp := decode[map[string]any](t, w)
	if resp["billingCycle"] != "monthly" || resp["status"] != "active" {
		t.Errorf("unexpected body %v", resp)
	}
}

func TestItemHandler_Delete(t *testing.T) {
	r, repo, storage := newItemRouter(t)

	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1"}, nil)
	storage.EXPECT().DeletePrefix(gomock.Any(), "users/user-1/items/item-1/").Return(nil)
	repo.EXPECT().Delete(gomock.Any(), "user-1", "item-1").Return(nil)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/items/item-1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
}
