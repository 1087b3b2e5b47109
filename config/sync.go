package config

var (
	// region Sync.

	// SyncInterval specifies the interval at which sites are synchronized in watch mode.
	SyncInterval = NewKey("sync.interval",
		WithDefaultValue("30m"),
		WithValidDuration())

	// SyncMaxErrors specifies the maximum number of errors that can occur before a run is aborted.
	SyncMaxErrors = NewKey("sync.maxErrors",
		WithDefaultValue(5),
		WithValidInt())

	// SyncFailFast aborts a site sync on the first per-file error instead of
	// collecting errors and continuing with the remaining files.
	SyncFailFast = NewKey("sync.failFast",
		WithDefaultValue(false),
		WithValidBool())

	// SyncPartSize is the chunk size, in bytes, used both for multipart uploads
	// and for ETag computation. The two must match or remote ETags of multipart
	// objects will never compare equal and every file gets re-uploaded.
	SyncPartSize = NewKey("sync.partSize",
		WithDefaultValue(8*1024*1024),
		WithValidPartSize())

	// SyncMaxConcurrentUploads is the maximum number of concurrent uploads per site.
	SyncMaxConcurrentUploads = NewKey("sync.maxConcurrentUploads",
		WithDefaultValue(1),
		WithValidPositiveInt())

	// SyncUploadRetries is the number of retries for a failed upload before it
	// counts as a per-file error.
	SyncUploadRetries = NewKey("sync.uploadRetries",
		WithDefaultValue(3),
		WithValidPositiveInt())

	// SyncDefaultContentType is the content type used when none can be derived
	// from a file's extension.
	SyncDefaultContentType = NewKey("sync.defaultContentType",
		WithDefaultValue("text/plain"),
		WithValidString())

	// SyncSites specifies the sites to synchronize.
	SyncSites = NewKey("sync.sites",
		WithDefaultValue([]map[string]interface{}{}),
		WithValidSites())

	// endregion.
)
