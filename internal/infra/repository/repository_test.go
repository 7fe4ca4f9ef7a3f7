package repository

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/testutil"
)

func setupDB(ctx context.Context, t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.SetupSQLite(ctx, t)
	if err := AutoMigrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
