package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-vault/internal/domain"
	"github.com/KasumiMercury/primind-vault/internal/service/lifecycle"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *domain.MockItemRepository, *domain.MockObjectStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := domain.NewMockItemRepository(ctrl)
	storage := domain.NewMockObjectStorage(ctrl)
	return NewService(repo, storage, lifecycle.NewClassifier(), nil), repo, storage
}

func ptr[T any](v T) *T {
	return &v
}

func TestService_CreateAppliesTemplateDefaults(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *domain.Item) error {
		item.ID = "item-1"
		return nil
	})

	created, err := svc.Create(context.Background(), &domain.Item{
		UserID:      "user-1",
		Name:        "  Netflix  ",
		TemplateKey: "streaming",
		Fields:      map[string]string{"provider": "Netflix"},
		Price:       ptr(15.49),
		Currency:    "eur",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID != "item-1" {
		t.Errorf("ID = %q, want item-1", created.ID)
	}
	if created.Name != "Netflix" {
		t.Errorf("Name = %q, want trimmed", created.Name)
	}
	if created.Class != domain.ItemClassSubscription {
		t.Errorf("Class = %q, want subscription", created.Class)
	}
	if created.Category == nil || *created.Category != "Entertainment" {
		t.Errorf("Category = %v, want Entertainment", created.Category)
	}
	if created.BillingCycle == nil || *created.BillingCycle != domain.BillingCycleMonthly {
		t.Errorf("BillingCycle = %v, want monthly", created.BillingCycle)
	}
	if created.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", created.Currency)
	}
}

func TestService_CreateKeepsExplicitValues(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	created, err := svc.Create(context.Background(), &domain.Item{
		UserID:       "user-1",
		Name:         "Spotify family",
		TemplateKey:  "streaming",
		Category:     ptr("Music"),
		Fields:       map[string]string{"provider": "Spotify"},
		BillingCycle: ptr(domain.BillingCycleYearly),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *created.Category != "Music" {
		t.Errorf("Category = %q, want Music", *created.Category)
	}
	if *created.BillingCycle != domain.BillingCycleYearly {
		t.Errorf("BillingCycle = %q, want yearly", *created.BillingCycle)
	}
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		item    domain.Item
		wantErr error
	}{
		{
			name:    "missing name",
			item:    domain.Item{UserID: "user-1", Name: "   "},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "unknown class",
			item:    domain.Item{UserID: "user-1", Name: "x", Class: "vehicle"},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "unknown template",
			item:    domain.Item{UserID: "user-1", Name: "x", TemplateKey: "spaceship"},
			wantErr: domain.ErrTemplateNotFound,
		},
		{
			name:    "missing required template field",
			item:    domain.Item{UserID: "user-1", Name: "Passport", TemplateKey: "passport", Fields: map[string]string{"number": "X1"}},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "price on document",
			item:    domain.Item{UserID: "user-1", Name: "Passport", Price: ptr(10.0)},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "negative price",
			item:    domain.Item{UserID: "user-1", Name: "Gym", Class: domain.ItemClassSubscription, Price: ptr(-1.0)},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "billing cycle on document",
			item:    domain.Item{UserID: "user-1", Name: "Passport", BillingCycle: ptr(domain.BillingCycleMonthly)},
			wantErr: domain.ErrInvalidItem,
		},
		{
			name:    "zero expiration date",
			item:    domain.Item{UserID: "user-1", Name: "Passport", ExpirationDate: &time.Time{}},
			wantErr: domain.ErrInvalidItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)

			item := tt.item
			_, err := svc.Create(context.Background(), &item)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_CreateDefaultsToDocument(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	created, err := svc.Create(context.Background(), &domain.Item{UserID: "user-1", Name: "Lease", Category: ptr("  ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Class != domain.ItemClassDocument {
		t.Errorf("Class = %q, want document", created.Class)
	}
	if created.Category != nil {
		t.Errorf("blank category should be cleared, got %q", *created.Category)
	}
}

func TestService_GetClassifies(t *testing.T) {
	svc, repo, _ := newTestService(t)

	expiry := now.Add(5 * 24 * time.Hour)
	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{
		ID: "item-1", UserID: "user-1", Name: "Passport", ExpirationDate: &expiry,
	}, nil)

	detail, err := svc.Get(context.Background(), "user-1", "item-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := detail.Classification
	if c == nil {
		t.Fatal("expected classification")
	}
	if c.Status != domain.StatusExpiring || c.Urgency != domain.UrgencyHigh || c.DaysLeft == nil || *c.DaysLeft != 5 {
		t.Errorf("unexpected classification %+v", c)
	}
}

func TestService_GetInvalidDateHasNoClassification(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{
		ID: "item-1", UserID: "user-1", Name: "Broken", ExpirationDate: &time.Time{},
	}, nil)

	detail, err := svc.Get(context.Background(), "user-1", "item-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Classification != nil {
		t.Errorf("expected nil classification, got %+v", detail.Classification)
	}
}

func TestService_GetNotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Get(gomock.Any(), "user-2", "item-1").Return(nil, domain.ErrItemNotFound)

	_, err := svc.Get(context.Background(), "user-2", "item-1", now)
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("got %v, want ErrItemNotFound", err)
	}
}

func TestService_ListFiltersByStatus(t *testing.T) {
	expired := now.Add(-48 * time.Hour)
	soon := now.Add(3 * 24 * time.Hour)
	later := now.Add(90 * 24 * time.Hour)

	items := []domain.Item{
		{ID: "expired", ExpirationDate: &expired},
		{ID: "soon", ExpirationDate: &soon},
		{ID: "later", RenewalDate: &later},
		{ID: "undated"},
		{ID: "broken", ExpirationDate: &time.Time{}},
	}

	tests := []struct {
		name   string
		status domain.Status
		want   []string
	}{
		{name: "no filter", want: []string{"expired", "soon", "later", "undated", "broken"}},
		{name: "expired", status: domain.StatusExpired, want: []string{"expired"}},
		{name: "expiring", status: domain.StatusExpiring, want: []string{"soon"}},
		{name: "active", status: domain.StatusActive, want: []string{"later", "undated"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			filter := domain.ItemFilter{Status: tt.status}
			repo.EXPECT().ListByUser(gomock.Any(), "user-1", filter).Return(items, nil)

			details, err := svc.List(context.Background(), "user-1", filter, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(details) != len(tt.want) {
				t.Fatalf("got %d items, want %d", len(details), len(tt.want))
			}
			for i, id := range tt.want {
				if details[i].Item.ID != id {
					t.Errorf("details[%d] = %q, want %q", i, details[i].Item.ID, id)
				}
			}
		})
	}
}

func TestService_ListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(context.Background(), "user-1", domain.ItemFilter{Status: "archived"}, now)
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Errorf("got %v, want ErrInvalidItem", err)
	}
}

func TestService_UpdateKeepsCreatedAt(t *testing.T) {
	svc, repo, _ := newTestService(t)

	createdAt := now.Add(-24 * time.Hour)
	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1", UserID: "user-1", CreatedAt: createdAt}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item *domain.Item) error {
		if !item.CreatedAt.Equal(createdAt) {
			t.Errorf("CreatedAt = %v, want %v", item.CreatedAt, createdAt)
		}
		return nil
	})

	_, err := svc.Update(context.Background(), &domain.Item{ID: "item-1", UserID: "user-1", Name: "Renamed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_UpdateOtherOwner(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.EXPECT().Get(gomock.Any(), "user-2", "item-1").Return(nil, domain.ErrItemNotFound)

	_, err := svc.Update(context.Background(), &domain.Item{ID: "item-1", UserID: "user-2", Name: "Mine now"})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("got %v, want ErrItemNotFound", err)
	}
}

func TestService_DeleteRemovesObjectsFirst(t *testing.T) {
	svc, repo, storage := newTestService(t)

	gomock.InOrder(
		repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1", UserID: "user-1"}, nil),
		storage.EXPECT().DeletePrefix(gomock.Any(), "users/user-1/items/item-1/").Return(nil),
		repo.EXPECT().Delete(gomock.Any(), "user-1", "item-1").Return(nil),
	)

	if err := svc.Delete(context.Background(), "user-1", "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_DeleteStopsWhenObjectsFail(t *testing.T) {
	svc, repo, storage := newTestService(t)

	storageErr := errors.New("bucket unavailable")
	repo.EXPECT().Get(gomock.Any(), "user-1", "item-1").Return(&domain.Item{ID: "item-1", UserID: "user-1"}, nil)
	storage.EXPECT().DeletePrefix(gomock.Any(), gomock.Any()).Return(storageErr)

	err := svc.Delete(context.Background(), "user-1", "item-1")
	if !errors.Is(err, storageErr) {
		t.Errorf("got %v, want %v", err, storageErr)
	}
}
