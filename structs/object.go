package structs

// LocalFile pairs an absolute path on disk with the bucket key it maps to.
// The key is relative to the sync root and always uses forward slashes.
type LocalFile struct {
	Path string
	Key  string
}
