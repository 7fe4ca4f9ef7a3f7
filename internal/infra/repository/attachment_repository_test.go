package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-vault/internal/domain"
)

func TestAttachmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAttachmentRepository(setupDB(ctx, t))

	first := &domain.Attachment{ItemID: "item-1", UserID: "user-1", FileName: "front.jpg", ContentType: "image/jpeg", Size: 1024, ObjectKey: "users/user-1/items/item-1/a/front.jpg"}
	second := &domain.Attachment{ItemID: "item-1", UserID: "user-1", FileName: "back.jpg", ContentType: "image/jpeg", Size: 2048, ObjectKey: "users/user-1/items/item-1/b/back.jpg"}
	other := &domain.Attachment{ItemID: "item-2", UserID: "user-1", FileName: "bill.pdf", ObjectKey: "k"}

	for _, a := range []*domain.Attachment{first, second, other} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}

	list, err := repo.ListByItem(ctx, "user-1", "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(list))
	}

	foreign, err := repo.ListByItem(ctx, "user-2", "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("expected no attachments for another owner, got %d", len(foreign))
	}

	got, err := repo.Get(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ObjectKey != first.ObjectKey || got.Size != 1024 {
		t.Errorf("unexpected attachment: %+v", got)
	}

	if err := repo.Delete(ctx, "user-2", first.ID); !errors.Is(err, domain.ErrAttachmentNotFound) {
		t.Errorf("expected ErrAttachmentNotFound for other owner, got %v", err)
	}
	if err := repo.Delete(ctx, "user-1", first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Get(ctx, "user-1", first.ID); !errors.Is(err, domain.ErrAttachmentNotFound) {
		t.Errorf("expected ErrAttachmentNotFound after delete, got %v", err)
	}
}
