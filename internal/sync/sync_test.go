package sync

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statichost/site-sync/config"
	"github.com/statichost/site-sync/structs"
)

// withConfig overrides a config key for the duration of the test.
func withConfig(t *testing.T, name string, value interface{}) {
	t.Helper()

	previous := viper.Get(name)
	viper.Set(name, value)

	for _, rk := range config.Reload() {
		require.NoError(t, rk.Error, rk.Key)
	}

	t.Cleanup(func() {
		viper.Set(name, previous)
		config.Reload()
	})
}

func TestSyncSiteUploadsEverythingIntoEmptyBucket(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "hello")
	writeTestFile(t, dir, "sub/dir/page.html", "<html></html>")

	uploader := &fakeUploader{}
	client := &Client{api: &fakeS3{}, uploader: uploader}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.NoError(t, err)

	require.Len(t, uploader.uploads, 2)

	var keys []string
	for _, u := range uploader.uploads {
		keys = append(keys, aws.StringValue(u.input.Key))
		assert.Equal(t, "my-bucket", aws.StringValue(u.input.Bucket))
		assert.Equal(t, config.SyncPartSize.Int64(), u.partSize)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a.txt", "sub/dir/page.html"}, keys)

	text := uploader.uploadByKey("a.txt")
	require.NotNil(t, text)
	assert.Equal(t, "text/plain", aws.StringValue(text.input.ContentType))
	assert.Equal(t, []byte("hello"), text.content)

	page := uploader.uploadByKey("sub/dir/page.html")
	require.NotNil(t, page)
	assert.Equal(t, "text/html", aws.StringValue(page.input.ContentType))
}

func TestSyncSiteSkipsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "hello")

	uploader := &fakeUploader{}
	client := &Client{
		api: &fakeS3{
			pages: [][]*s3.Object{{
				s3Object("a.txt", `"5d41402abc4b2a76b9719d911017c592"`),
			}},
		},
		uploader: uploader,
	}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.NoError(t, err)

	assert.Empty(t, uploader.uploads)
}

func TestSyncSiteReuploadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "hello world")

	uploader := &fakeUploader{}
	client := &Client{
		api: &fakeS3{
			pages: [][]*s3.Object{{
				s3Object("a.txt", `"5d41402abc4b2a76b9719d911017c592"`),
			}},
		},
		uploader: uploader,
	}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.NoError(t, err)

	require.Len(t, uploader.uploads, 1)
	assert.Equal(t, "a.txt", aws.StringValue(uploader.uploads[0].input.Key))
}

func TestSyncSiteAlwaysUploadsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "empty.txt", "")

	uploader := &fakeUploader{}
	client := &Client{
		api: &fakeS3{
			pages: [][]*s3.Object{{
				s3Object("empty.txt", `"d41d8cd98f00b204e9800998ecf8427e"`),
			}},
		},
		uploader: uploader,
	}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.NoError(t, err)

	require.Len(t, uploader.uploads, 1)
	assert.Equal(t, "empty.txt", aws.StringValue(uploader.uploads[0].input.Key))
}

func TestSyncSiteCollectsUploadErrors(t *testing.T) {
	withConfig(t, "sync.uploadRetries", 0)

	dir := t.TempDir()
	writeTestFile(t, dir, "bad.txt", "broken")
	writeTestFile(t, dir, "good.txt", "fine")

	uploader := &fakeUploader{
		errFunc: func(input *s3manager.UploadInput) error {
			if aws.StringValue(input.Key) == "bad.txt" {
				return errors.New("injected failure")
			}
			return nil
		},
	}
	client := &Client{api: &fakeS3{}, uploader: uploader}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")

	// Best-effort: the healthy file still made it up.
	assert.NotNil(t, uploader.uploadByKey("good.txt"))
}

func TestSyncSiteFailFast(t *testing.T) {
	withConfig(t, "sync.uploadRetries", 0)
	withConfig(t, "sync.failFast", true)

	dir := t.TempDir()
	writeTestFile(t, dir, "bad.txt", "broken")

	uploader := &fakeUploader{
		errFunc: func(*s3manager.UploadInput) error {
			return errors.New("injected failure")
		},
	}
	client := &Client{api: &fakeS3{}, uploader: uploader}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")
}

func TestSyncSiteAbortsOnManifestFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.txt", "hello")

	uploader := &fakeUploader{}
	client := &Client{
		api:      &fakeS3{listErr: errors.New("access denied")},
		uploader: uploader,
	}

	err := client.SyncSite(context.Background(), &structs.Site{
		Bucket: "my-bucket",
		Source: dir,
	})
	require.Error(t, err)

	// No uploads without a complete manifest.
	assert.Empty(t, uploader.uploads)
}

func TestListLocalFilesKeys(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "index.html", "<html></html>")
	writeTestFile(t, dir, "css/main.css", "body {}")
	writeTestFile(t, dir, "img/icons/x.svg", "<svg/>")

	files, err := listLocalFiles(dir)
	require.NoError(t, err)

	var keys []string
	for _, f := range files {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)

	assert.Equal(t, []string{"css/main.css", "img/icons/x.svg", "index.html"}, keys)
}

func TestListLocalFilesMissingRoot(t *testing.T) {
	_, err := listLocalFiles(t.TempDir() + "/does-not-exist")
	assert.Error(t, err)
}

func TestContentTypeForKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"a.txt", "text/plain"},
		{"index.html", "text/html"},
		{"css/main.css", "text/css"},
		{"README", "text/plain"},
		{"archive.weird-ext", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, contentTypeForKey(tt.key))
		})
	}
}
