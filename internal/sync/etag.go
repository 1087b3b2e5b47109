package sync

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ComputeETag computes the S3-style ETag of a local file: the file is read in
// partSize chunks, each chunk is MD5-hashed, and the result is either the
// quoted hex digest of the single chunk, or, for multipart-sized files, the
// quoted hex digest of the concatenated raw chunk digests with a "-<count>"
// suffix. This matches what S3 records for multipart uploads with the same
// part size, so the returned string compares equal to the remote ETag by
// plain string equality.
//
// An empty file yields an empty ETag; callers treat that as "always upload".
func ComputeETag(path string, partSize int64) (string, error) {
	if partSize <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidPartSize, partSize)
	}

	f, err := os.Open(path) // #nosec G304 - paths come from the local walk
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var (
		digests []byte
		parts   int
	)

	for {
		h := md5.New() // #nosec G401 - matches the store's ETag convention, not used for security
		n, err := io.CopyN(h, f, partSize)
		if n > 0 {
			parts++
			digests = h.Sum(digests)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	switch parts {
	case 0:
		return "", nil
	case 1:
		return `"` + hex.EncodeToString(digests) + `"`, nil
	default:
		sum := md5.Sum(digests) // #nosec G401
		return fmt.Sprintf("\"%s-%d\"", hex.EncodeToString(sum[:]), parts), nil
	}
}
