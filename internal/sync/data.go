package sync

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/statichost/site-sync/internal/telemetry"
)

// uploadDataCounter wraps the file handed to the uploader and records the
// bytes that actually went out.
type uploadDataCounter struct {
	ctx    context.Context
	f      io.ReadSeeker
	bucket string
}

func (c uploadDataCounter) Read(p []byte) (int, error) {
	n, err := c.f.Read(p)

	if err == nil && n > 0 {
		telemetry.UploadedBytes.Add(c.ctx, int64(n),
			metric.WithAttributes(
				attribute.KeyValue{
					Key:   "bucket",
					Value: attribute.StringValue(c.bucket),
				},
			),
		)
	}

	return n, err
}

func (c uploadDataCounter) Seek(offset int64, whence int) (int64, error) {
	return c.f.Seek(offset, whence)
}
