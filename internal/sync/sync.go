package sync

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/statichost/site-sync/config"
	"github.com/statichost/site-sync/internal/telemetry"
	"github.com/statichost/site-sync/structs"
)

// SyncSite uploads the site's source directory to its bucket, skipping every
// file whose locally computed ETag matches the bucket's manifest entry.
//
// The manifest is loaded once and read-only afterwards, so the per-file work
// can run concurrently; keys are unique within one walk, so no two uploads
// ever race on the same key. With sync.failFast the first per-file error
// aborts the run, otherwise errors are collected and returned together.
func (c *Client) SyncSite(ctx context.Context, site *structs.Site) error {
	partSize := config.SyncPartSize.Int64()
	if partSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPartSize, partSize)
	}

	manifest, err := LoadManifest(ctx, c.api, site.Bucket)
	if err != nil {
		return err
	}

	files, err := listLocalFiles(site.Source)
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", site.Source, err)
	}

	log.Info().
		Str("bucket", site.Bucket).
		Str("source", site.Source).
		Int("files", len(files)).
		Int("remoteObjects", len(manifest)).
		Msg("Syncing site")

	failFast := config.SyncFailFast.Bool()

	limit := config.SyncMaxConcurrentUploads.Int()
	if limit <= 0 {
		limit = 1
	}

	var (
		mu   sync.Mutex
		merr error
	)

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for _, f := range files {
		f := f

		g.Go(func() error {
			err := c.syncFile(ctx, site, manifest, f, partSize)
			if err == nil {
				return nil
			}

			log.Error().
				Err(err).
				Str("bucket", site.Bucket).
				Str("key", f.Key).
				Msg("Failed to sync file")

			telemetry.UploadErrors.Add(ctx, 1,
				metric.WithAttributes(
					attribute.KeyValue{
						Key:   "bucket",
						Value: attribute.StringValue(site.Bucket),
					},
					attribute.KeyValue{
						Key:   "key",
						Value: attribute.StringValue(f.Key),
					},
				),
			)

			if failFast {
				return fmt.Errorf("%s: %w", f.Key, err)
			}

			mu.Lock()
			merr = multierr.Append(merr, fmt.Errorf("%s: %w", f.Key, err))
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return merr
}

func (c *Client) syncFile(ctx context.Context, site *structs.Site, manifest Manifest, f structs.LocalFile, partSize int64) error {
	etag, err := ComputeETag(f.Path, partSize)
	if err != nil {
		return err
	}

	if !manifest.ShouldUpload(f.Key, etag) {
		log.Debug().
			Str("bucket", site.Bucket).
			Str("key", f.Key).
			Msg("Remote ETag matches, skipping upload")

		telemetry.SkippedFiles.Add(ctx, 1,
			metric.WithAttributes(
				attribute.KeyValue{
					Key:   "bucket",
					Value: attribute.StringValue(site.Bucket),
				},
			),
		)

		return nil
	}

	contentType := contentTypeForKey(f.Key)

	log.Info().
		Str("bucket", site.Bucket).
		Str("key", f.Key).
		Str("contentType", contentType).
		Str("etag", etag).
		Msg("Uploading file")

	return backoff.RetryNotify(func() error {
		return c.putFile(ctx, site, f, contentType, partSize)
	}, backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(), config.SyncUploadRetries.UInt64(),
	), ctx), func(err error, dur time.Duration) {
		log.Warn().
			Err(err).
			Dur("backoff", dur).
			Str("bucket", site.Bucket).
			Str("key", f.Key).
			Msg("Upload failed, retrying")
	})
}

func (c *Client) putFile(ctx context.Context, site *structs.Site, f structs.LocalFile, contentType string, partSize int64) error {
	fd, err := os.Open(f.Path) // #nosec G304 - paths come from the local walk
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Path, err)
	}
	defer fd.Close()

	// Uploading with the same part size used for ETag computation keeps the
	// multipart ETags the bucket records comparable on the next run.
	if _, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(site.Bucket),
		Key:         aws.String(f.Key),
		Body:        uploadDataCounter{ctx: ctx, f: fd, bucket: site.Bucket},
		ContentType: aws.String(contentType),
	}, func(u *s3manager.Uploader) {
		u.PartSize = partSize
	}); err != nil {
		return fmt.Errorf("failed to upload %s: %w", f.Key, err)
	}

	telemetry.UploadedFiles.Add(ctx, 1,
		metric.WithAttributes(
			attribute.KeyValue{
				Key:   "bucket",
				Value: attribute.StringValue(site.Bucket),
			},
		),
	)

	return nil
}
