package sync

import (
	"errors"
	"fmt"
)

// ErrInvalidPartSize is returned when the configured chunk size cannot be
// used for ETag computation or multipart uploads.
var ErrInvalidPartSize = errors.New("part size must be greater than zero")

// BucketCreateError wraps a bucket creation failure that is not an
// "already owned by you" conflict.
type BucketCreateError struct {
	Bucket string
	Err    error
}

func (e *BucketCreateError) Error() string {
	return fmt.Sprintf("failed to create bucket %s: %v", e.Bucket, e.Err)
}

func (e *BucketCreateError) Unwrap() error {
	return e.Err
}
