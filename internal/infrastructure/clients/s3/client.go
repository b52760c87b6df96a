package s3

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ammahealth/explainer-backend/pkg/config"
)

// Client wraps the AWS S3 client used for durable video storage.
type Client struct {
	api    *s3.Client
	bucket string
	region string
}

// NewClient creates a new S3 client using the default AWS credential chain.
func NewClient(ctx context.Context, cfg *config.StorageConfig) (*Client, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	api := s3.New(s3.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: awsCfg.BaseEndpoint,
		UsePathStyle: true,
	})

	return &Client{api: api, bucket: cfg.S3Bucket, region: cfg.S3Region}, nil
}

// API returns the underlying S3 client.
func (c *Client) API() *s3.Client {
	return c.api
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// Region returns the configured region.
func (c *Client) Region() string {
	return c.region
}
