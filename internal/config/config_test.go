package config

import (
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		portEnv, logLevelEnv, databaseDriverEnv, databaseURLEnv, redisAddrEnv,
		storageBucketEnv, sessionTTLEnv, alertThresholdsEnv, alertHorizonDaysEnv,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("expected port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.DSN != defaultSQLitePath {
		t.Errorf("expected sqlite default, got %s %s", cfg.Database.Driver, cfg.Database.DSN)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("expected redis addr %s, got %s", defaultRedisAddr, cfg.Redis.Addr)
	}
	if cfg.Storage.Enabled() {
		t.Error("expected storage to be disabled without a bucket")
	}
	if cfg.Session.TTL != defaultSessionTTL {
		t.Errorf("expected session TTL %v, got %v", defaultSessionTTL, cfg.Session.TTL)
	}
	if !slices.Equal(cfg.Alert.Thresholds, []int{30, 7, 1, 0}) {
		t.Errorf("unexpected thresholds: %v", cfg.Alert.Thresholds)
	}
	if cfg.Alert.Horizon() != 30*24*time.Hour {
		t.Errorf("unexpected horizon: %v", cfg.Alert.Horizon())
	}

	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadAlertConfigThresholds(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int
		wantErr error
	}{
		{name: "sorted descending and deduplicated", raw: "1, 14,7,14", want: []int{14, 7, 1}},
		{name: "single value", raw: "0", want: []int{0}},
		{name: "negative rejected", raw: "7,-1", wantErr: ErrInvalidAlertThresholds},
		{name: "garbage rejected", raw: "soon", wantErr: ErrInvalidAlertThresholds},
		{name: "only separators rejected", raw: " , ", wantErr: ErrInvalidAlertThresholds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(alertThresholdsEnv, tt.raw)

			cfg, err := LoadAlertConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(cfg.Thresholds, tt.want) {
				t.Errorf("expected thresholds %v, got %v", tt.want, cfg.Thresholds)
			}
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     error
		validateErr error
	}{
		{
			name: "postgres with url",
			env: map[string]string{
				databaseDriverEnv: "postgres",
				databaseURLEnv:    "postgres://vault@localhost/vault",
			},
		},
		{
			name:        "postgres without url",
			env:         map[string]string{databaseDriverEnv: "postgres", databaseURLEnv: ""},
			validateErr: ErrDatabaseURLMissing,
		},
		{
			name:        "unknown driver",
			env:         map[string]string{databaseDriverEnv: "oracle", databaseURLEnv: "x"},
			validateErr: ErrUnsupportedDatabaseDriver,
		},
		{
			name:    "bad lifetime",
			env:     map[string]string{databaseDriverEnv: "", databaseConnMaxLifetimeEnv: "forever"},
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadDatabaseConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			err = cfg.Validate()
			if tt.validateErr == nil && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if tt.validateErr != nil && !errors.Is(err, tt.validateErr) {
				t.Errorf("expected validation error %v, got %v", tt.validateErr, err)
			}
		})
	}
}

func TestLoadStorageConfig(t *testing.T) {
	t.Setenv(storageBucketEnv, "vault-attachments")
	t.Setenv(attachmentAllowedTypesEnv, "application/PDF, image/png,")
	t.Setenv(attachmentMaxBytesEnv, "1024")
	t.Setenv(storageUploadURLTTLEnv, "2m")

	cfg, err := LoadStorageConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Enabled() {
		t.Error("expected storage to be enabled")
	}
	if !slices.Equal(cfg.AllowedContentTypes, []string{"application/pdf", "image/png"}) {
		t.Errorf("unexpected content types: %v", cfg.AllowedContentTypes)
	}
	if cfg.MaxAttachmentSize != 1024 {
		t.Errorf("expected max size 1024, got %d", cfg.MaxAttachmentSize)
	}
	if cfg.UploadURLTTL != 2*time.Minute {
		t.Errorf("expected upload TTL 2m, got %v", cfg.UploadURLTTL)
	}
	if cfg.DownloadURLTTL != defaultDownloadURLTTL {
		t.Errorf("expected default download TTL, got %v", cfg.DownloadURLTTL)
	}

	t.Setenv(attachmentMaxBytesEnv, "-5")
	if _, err := LoadStorageConfig(); !errors.Is(err, ErrInvalidAttachmentMaxBytes) {
		t.Errorf("expected ErrInvalidAttachmentMaxBytes, got %v", err)
	}
}

func TestLoadRedisConfigInvalidDB(t *testing.T) {
	t.Setenv(redisDBEnv, "primary")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("expected ErrInvalidRedisDB, got %v", err)
	}
}
