package sync

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/statichost/site-sync/config"
	"github.com/statichost/site-sync/structs"
)

// Bucket policy granting anonymous read of every object, parameterized only
// by the bucket name.
const publicReadPolicyTemplate = `{
  "Version":"2012-10-17",
  "Statement":[{
    "Sid":"PublicReadGetObject",
    "Effect":"Allow",
    "Principal": "*",
    "Action":["s3:GetObject"],
    "Resource":["arn:aws:s3:::%s/*"]
  }]
}`

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(publicReadPolicyTemplate, bucket)
}

// EnsureBucket creates the bucket if it does not exist. A bucket already
// owned by the caller is fine; any other failure is a BucketCreateError.
func (c *Client) EnsureBucket(ctx context.Context, name, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}

	// us-east-1 rejects an explicit location constraint.
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(region),
		}
	}

	if _, err := c.api.CreateBucketWithContext(ctx, input); err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			log.Debug().
				Str("bucket", name).
				Msg("Bucket already owned, reusing")

			return nil
		}

		return &BucketCreateError{Bucket: name, Err: err}
	}

	log.Info().
		Str("bucket", name).
		Str("region", region).
		Msg("Created bucket")

	return nil
}

// SetPublicReadPolicy applies the public-read policy to the bucket.
func (c *Client) SetPublicReadPolicy(ctx context.Context, bucket string) error {
	if _, err := c.api.PutBucketPolicyWithContext(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(publicReadPolicy(bucket)),
	}); err != nil {
		return fmt.Errorf("failed to set policy on %s: %w", bucket, err)
	}

	return nil
}

// ConfigureWebsite enables static website hosting on the site's bucket with
// its index and error documents.
func (c *Client) ConfigureWebsite(ctx context.Context, site *structs.Site) error {
	if _, err := c.api.PutBucketWebsiteWithContext(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(site.Bucket),
		WebsiteConfiguration: &s3.WebsiteConfiguration{
			IndexDocument: &s3.IndexDocument{
				Suffix: aws.String(site.IndexDocument()),
			},
			ErrorDocument: &s3.ErrorDocument{
				Key: aws.String(site.ErrorDocument()),
			},
		},
	}); err != nil {
		return fmt.Errorf("failed to configure website on %s: %w", site.Bucket, err)
	}

	return nil
}

// BucketRegion resolves the region a bucket lives in, caching results.
func (c *Client) BucketRegion(ctx context.Context, bucket string) (string, error) {
	if config.S3RegionCacheEnabled.Bool() {
		if item := regionCache.Get(bucket); item != nil {
			return item.Value(), nil
		}
	}

	region, err := c.regionResolver(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to resolve region of %s: %w", bucket, err)
	}

	if region == "" {
		region = config.S3Region.String()
	}

	if config.S3RegionCacheEnabled.Bool() {
		regionCache.Set(bucket, region, ttlcache.DefaultTTL)
	}

	return region, nil
}

// ListBuckets returns the names of all buckets owned by the caller.
func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := c.api.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.StringValue(b.Name))
	}

	return names, nil
}

// SetupSite creates and configures the site's bucket for public website
// hosting: create, public-read policy, website documents. Every step's
// result is checked.
func (c *Client) SetupSite(ctx context.Context, site *structs.Site) error {
	region := site.Region
	if region == "" {
		region = config.S3Region.String()
	}

	if err := c.EnsureBucket(ctx, site.Bucket, region); err != nil {
		return err
	}

	if err := c.SetPublicReadPolicy(ctx, site.Bucket); err != nil {
		return err
	}

	if err := c.ConfigureWebsite(ctx, site); err != nil {
		return err
	}

	log.Info().
		Str("bucket", site.Bucket).
		Str("url", site.WebsiteURL(region)).
		Msg("Website configured")

	return nil
}
