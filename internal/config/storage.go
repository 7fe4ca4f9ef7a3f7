package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	storageBucketEnv          = "STORAGE_BUCKET"
	storageCredentialsFileEnv = "STORAGE_CREDENTIALS_FILE"
	storageUploadURLTTLEnv    = "STORAGE_UPLOAD_URL_TTL"
	storageDownloadURLTTLEnv  = "STORAGE_DOWNLOAD_URL_TTL"
	attachmentMaxBytesEnv     = "ATTACHMENT_MAX_BYTES"
	attachmentAllowedTypesEnv = "ATTACHMENT_ALLOWED_TYPES"

	defaultUploadURLTTL      = 15 * time.Minute
	defaultDownloadURLTTL    = 5 * time.Minute
	defaultAttachmentMaxSize = 25 << 20
)

var defaultAllowedContentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/heic",
	"image/webp",
	"text/plain",
}

// StorageConfig configures attachment storage. An empty Bucket disables attachments.
type StorageConfig struct {
	Bucket              string
	CredentialsFile     string
	UploadURLTTL        time.Duration
	DownloadURLTTL      time.Duration
	MaxAttachmentSize   int64
	AllowedContentTypes []string
}

func LoadStorageConfig() (*StorageConfig, error) {
	uploadTTL, err := durationFromEnv(storageUploadURLTTLEnv, defaultUploadURLTTL)
	if err != nil {
		return nil, err
	}

	downloadTTL, err := durationFromEnv(storageDownloadURLTTLEnv, defaultDownloadURLTTL)
	if err != nil {
		return nil, err
	}

	maxSize := int64(defaultAttachmentMaxSize)
	if raw := os.Getenv(attachmentMaxBytesEnv); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidAttachmentMaxBytes
		}
		maxSize = parsed
	}

	allowed := defaultAllowedContentTypes
	if raw := os.Getenv(attachmentAllowedTypesEnv); raw != "" {
		allowed = splitList(raw)
	}

	return &StorageConfig{
		Bucket:              os.Getenv(storageBucketEnv),
		CredentialsFile:     os.Getenv(storageCredentialsFileEnv),
		UploadURLTTL:        uploadTTL,
		DownloadURLTTL:      downloadTTL,
		MaxAttachmentSize:   maxSize,
		AllowedContentTypes: allowed,
	}, nil
}

func (c *StorageConfig) Enabled() bool {
	return c != nil && c.Bucket != ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, strings.ToLower(v))
		}
	}
	return values
}
