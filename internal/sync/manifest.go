package sync

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Manifest maps remote object keys to the ETag the bucket recorded for them.
// It is built fresh at the start of every sync run and never mutated after.
type Manifest map[string]string

// LoadManifest lists every object in the bucket, draining all pages. A failed
// page fetch fails the whole load; a partial manifest would make skip
// decisions unsafe.
func LoadManifest(ctx context.Context, api S3API, bucket string) (Manifest, error) {
	manifest := make(Manifest)

	if err := api.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			manifest[aws.StringValue(obj.Key)] = aws.StringValue(obj.ETag)
		}
		return true
	}); err != nil {
		return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, err)
	}

	return manifest, nil
}

// ShouldUpload reports whether the file behind key must be uploaded: true for
// keys missing from the manifest and for any ETag mismatch. Comparison is
// exact string equality, quoting included. An empty local ETag (empty file)
// always uploads.
func (m Manifest) ShouldUpload(key, localETag string) bool {
	if localETag == "" {
		return true
	}

	remote, ok := m[key]

	return !ok || remote != localETag
}
