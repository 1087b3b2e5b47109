package config

import "time"

var (
	// S3Region is the region used for bucket creation and as the fallback when
	// a bucket's region cannot be resolved.
	S3Region = NewKey("s3.region",
		WithDefaultValue("us-east-1"),
		WithValidString())

	// S3Endpoint overrides the S3 endpoint, e.g. for localstack or
	// S3-compatible stores. Empty means the default AWS endpoint.
	S3Endpoint = NewKey("s3.endpoint",
		WithDefaultValue(""),
		WithValidString())

	// S3ForcePathStyle forces path-style addressing, required by most
	// S3-compatible stores.
	S3ForcePathStyle = NewKey("s3.forcePathStyle",
		WithDefaultValue(false),
		WithValidBool())

	// S3RegionCacheEnabled enables caching of bucket region lookups.
	S3RegionCacheEnabled = NewKey("s3.regionCache.enabled",
		WithDefaultValue(true),
		WithValidBool())

	// S3RegionCacheExpirationTime is the expiration time for cached bucket regions.
	S3RegionCacheExpirationTime = NewKey("s3.regionCache.expirationTime",
		WithDefaultValue(1*time.Hour),
		WithValidDuration())

	// S3RegionCacheCapacity is the maximum number of entries the region cache can hold.
	S3RegionCacheCapacity = NewKey("s3.regionCache.capacity",
		WithDefaultValue(1000),
		WithValidInt())
)
