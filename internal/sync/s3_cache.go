package sync

import (
	"context"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/statichost/site-sync/config"
)

// Cache resolved bucket regions for a while to avoid a lookup per operation.
var regionCache *ttlcache.Cache[string, string]

func init() {
	regionCache = ttlcache.New(
		ttlcache.WithTTL[string, string](config.S3RegionCacheExpirationTime.Duration()),
		ttlcache.WithCapacity[string, string](config.S3RegionCacheCapacity.UInt64()),
	)

	regionCache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, string]) {
		log.Debug().
			Str("bucket", item.Key()).
			Msg("Evicted bucket region from cache")
	})

	if config.S3RegionCacheEnabled.Bool() {
		regionCache.Start()
	}
}
