package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-vault/internal/config"
	"github.com/KasumiMercury/primind-vault/internal/infra/database"
)

// SetupRedisContainer starts a disposable Redis. The test is skipped when Docker
// is not available.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}

// SetupSQLite opens a file-backed SQLite database in the test's temp dir. The
// database is closed when the test finishes.
func SetupSQLite(ctx context.Context, t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(ctx, &config.DatabaseConfig{
		Driver:             config.DriverSQLite,
		DSN:                filepath.Join(t.TempDir(), "vault.db"),
		ConnMaxLifetime:    time.Minute,
		SlowQueryThreshold: time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("failed to close sqlite database: %v", err)
		}
	})

	return db
}
