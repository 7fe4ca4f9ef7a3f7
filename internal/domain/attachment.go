package domain

import (
	"path"
	"strings"
	"time"
	"unicode"
)

const maxFileNameLength = 128

type Attachment struct {
	ID          string
	ItemID      string
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	ObjectKey   string
	CreatedAt   time.Time
}

// ItemObjectPrefix is the storage prefix holding every object of one item.
func ItemObjectPrefix(userID, itemID string) string {
	return "users/" + userID + "/items/" + itemID + "/"
}

func AttachmentObjectKey(userID, itemID, attachmentID, fileName string) string {
	return ItemObjectPrefix(userID, itemID) + attachmentID + "/" + SanitizeFileName(fileName)
}

// SanitizeFileName keeps the base name and replaces anything outside
// letters, digits, dot, dash and underscore with an underscore.
func SanitizeFileName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.TrimLeft(b.String(), ".")
	if len(sanitized) > maxFileNameLength {
		sanitized = sanitized[len(sanitized)-maxFileNameLength:]
	}
	if sanitized == "" {
		return "file"
	}
	return sanitized
}
