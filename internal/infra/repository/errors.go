package repository

import "errors"

var (
	ErrNilRecord       = errors.New("nil record")
	ErrMissingOwner    = errors.New("record owner is required")
	ErrDuplicateRecord = errors.New("duplicate record")
)
