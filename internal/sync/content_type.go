package sync

import (
	"mime"
	"path"
	"strings"

	"github.com/statichost/site-sync/config"
)

// contentTypeForKey derives the upload content type from the key's file
// extension. Charset parameters are stripped so the stored type matches what
// browsers and the website endpoint expect. Unknown extensions fall back to
// the configured default.
func contentTypeForKey(key string) string {
	ct := mime.TypeByExtension(strings.ToLower(path.Ext(key)))
	if ct == "" {
		if fallback := config.SyncDefaultContentType.String(); fallback != "" {
			return fallback
		}

		return "text/plain"
	}

	if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
		return mediaType
	}

	return ct
}
