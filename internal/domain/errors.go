package domain

import "errors"

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidAttachment  = errors.New("invalid attachment")
	ErrInvalidDate        = errors.New("invalid date")
	ErrStorageDisabled    = errors.New("object storage disabled")
)
