package objectstore

import "errors"

var (
	ErrBucketRequired = errors.New("storage bucket is required")
	ErrEmptyPrefix    = errors.New("refusing to delete with an empty prefix")
)
