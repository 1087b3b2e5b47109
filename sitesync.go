package sitesync

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"

	"github.com/statichost/site-sync/config"
	"github.com/statichost/site-sync/internal/sync"
	"github.com/statichost/site-sync/internal/telemetry"
	"github.com/statichost/site-sync/structs"
)

// Run keeps the configured sites in sync, waking up every sync.interval.
func Run(ctx context.Context) error {
	if config.TelemetryEnabled.Bool() {
		go func() {
			if err := telemetry.Start(ctx); err != nil {
				log.Error().
					Err(err).
					Msg("Failed to start telemetry")
			}
		}()
	}

	sites := config.SyncSites.Sites()

	for {
		if err := RunOnce(ctx, sites); err != nil {
			return err
		}

		dur := config.SyncInterval.Duration()
		log.Info().Dur("interval", dur).Msg("Waiting for next sync")
		time.Sleep(dur)
	}
}

// RunOnce syncs every site once, aggregating per-site failures. The run is
// aborted when sync.maxErrors is exceeded.
func RunOnce(ctx context.Context, sites []*structs.Site) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	var merr error

	for k := range sites {
		telemetry.MonitoredSites.Record(ctx, int64(len(sites)))

		select {
		case <-ctx.Done():
			return nil
		default:
			site := sites[k]

			if err := client.SyncSite(ctx, site); err != nil {
				log.Error().
					Err(err).
					Str("bucket", site.Bucket).
					Str("source", site.Source).
					Msg("Failed to sync site")

				telemetry.SiteSyncErrors.Add(ctx, 1,
					metric.WithAttributes(
						attribute.KeyValue{
							Key:   "bucket",
							Value: attribute.StringValue(site.Bucket),
						},
						attribute.KeyValue{
							Key:   "error",
							Value: attribute.StringValue(err.Error()),
						},
					),
				)

				merr = multierr.Append(merr, err)

				if config.SyncMaxErrors.Int() > 0 {
					if len(multierr.Errors(merr)) >= config.SyncMaxErrors.Int() {
						return merr
					}
				}
			}
		}
	}

	return merr
}

// Setup creates and configures the bucket for a single site.
func Setup(ctx context.Context, site *structs.Site) error {
	client, err := sync.NewClient()
	if err != nil {
		return err
	}

	return client.SetupSite(ctx, site)
}

// ListBuckets returns all bucket names owned by the configured credentials.
func ListBuckets(ctx context.Context) ([]string, error) {
	client, err := sync.NewClient()
	if err != nil {
		return nil, err
	}

	return client.ListBuckets(ctx)
}
