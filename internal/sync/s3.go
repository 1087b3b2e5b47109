package sync

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/statichost/site-sync/config"
)

// S3API is the slice of the S3 client surface this package uses. It is
// satisfied by *s3.S3 and by test fakes.
type S3API interface {
	ListObjectsV2PagesWithContext(aws.Context, *s3.ListObjectsV2Input, func(*s3.ListObjectsV2Output, bool) bool, ...request.Option) error
	CreateBucketWithContext(aws.Context, *s3.CreateBucketInput, ...request.Option) (*s3.CreateBucketOutput, error)
	PutBucketPolicyWithContext(aws.Context, *s3.PutBucketPolicyInput, ...request.Option) (*s3.PutBucketPolicyOutput, error)
	PutBucketWebsiteWithContext(aws.Context, *s3.PutBucketWebsiteInput, ...request.Option) (*s3.PutBucketWebsiteOutput, error)
	ListBucketsWithContext(aws.Context, *s3.ListBucketsInput, ...request.Option) (*s3.ListBucketsOutput, error)
}

// UploaderAPI abstracts the s3manager uploader for testability.
type UploaderAPI interface {
	UploadWithContext(aws.Context, *s3manager.UploadInput, ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Client bundles the S3 API, the multipart uploader and the session used for
// region lookups. Credentials come from the default AWS chain (environment,
// shared config, instance role).
type Client struct {
	api      S3API
	uploader UploaderAPI

	// regionResolver is swapped out in tests; the default asks S3 for the
	// bucket's actual region.
	regionResolver func(aws.Context, string) (string, error)
}

// NewClient creates a Client from the application configuration.
func NewClient() (*Client, error) {
	cfg := aws.Config{
		Region: aws.String(config.S3Region.String()),
		HTTPClient: &http.Client{
			Timeout: 300 * time.Second, // Large assets can take a while
		},
	}

	if endpoint := config.S3Endpoint.String(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}

	if config.S3ForcePathStyle.Bool() {
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, err
	}

	svc := s3.New(sess)

	return &Client{
		api: svc,
		uploader: s3manager.NewUploaderWithClient(svc, func(u *s3manager.Uploader) {
			u.PartSize = config.SyncPartSize.Int64()
		}),
		regionResolver: func(ctx aws.Context, bucket string) (string, error) {
			return s3manager.GetBucketRegion(ctx, sess, bucket, config.S3Region.String())
		},
	}, nil
}
