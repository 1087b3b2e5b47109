package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3Object(key, etag string) *s3.Object {
	return &s3.Object{
		Key:  aws.String(key),
		ETag: aws.String(etag),
	}
}

func TestLoadManifestDrainsAllPages(t *testing.T) {
	api := &fakeS3{
		pages: [][]*s3.Object{
			{
				s3Object("index.html", `"aaa"`),
				s3Object("css/main.css", `"bbb"`),
			},
			{
				s3Object("img/logo.png", `"ccc-3"`),
			},
		},
	}

	manifest, err := LoadManifest(context.Background(), api, "my-bucket")
	require.NoError(t, err)

	assert.Len(t, manifest, 3)
	assert.Equal(t, `"aaa"`, manifest["index.html"])
	assert.Equal(t, `"bbb"`, manifest["css/main.css"])
	assert.Equal(t, `"ccc-3"`, manifest["img/logo.png"])
}

func TestLoadManifestEmptyBucket(t *testing.T) {
	manifest, err := LoadManifest(context.Background(), &fakeS3{}, "my-bucket")
	require.NoError(t, err)

	assert.Empty(t, manifest)
}

func TestLoadManifestListFailure(t *testing.T) {
	manifest, err := LoadManifest(context.Background(), &fakeS3{listErr: errors.New("access denied")}, "my-bucket")
	assert.Error(t, err)
	assert.Nil(t, manifest)
	assert.Contains(t, err.Error(), "my-bucket")
}

func TestManifestShouldUpload(t *testing.T) {
	manifest := Manifest{
		"index.html": `"5d41402abc4b2a76b9719d911017c592"`,
		"app.js":     `"deadbeef-4"`,
	}

	tests := []struct {
		name      string
		key       string
		localETag string
		expected  bool
	}{
		{
			name:      "missing key",
			key:       "new.html",
			localETag: `"5d41402abc4b2a76b9719d911017c592"`,
			expected:  true,
		},
		{
			name:      "exact match",
			key:       "index.html",
			localETag: `"5d41402abc4b2a76b9719d911017c592"`,
			expected:  false,
		},
		{
			name:      "multipart match",
			key:       "app.js",
			localETag: `"deadbeef-4"`,
			expected:  false,
		},
		{
			name:      "different digest",
			key:       "index.html",
			localETag: `"ffffffffffffffffffffffffffffffff"`,
			expected:  true,
		},
		{
			name:      "missing quotes never matches",
			key:       "index.html",
			localETag: "5d41402abc4b2a76b9719d911017c592",
			expected:  true,
		},
		{
			name:      "empty local fingerprint",
			key:       "index.html",
			localETag: "",
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, manifest.ShouldUpload(tt.key, tt.localETag))
		})
	}
}
