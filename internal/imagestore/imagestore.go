package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Client uploads storefront images to an S3-compatible image host and hands
// back publicly servable URLs, the role cloudinary plays for the dashboard.
type Client struct {
	api     *s3.Client
	bucket  string
	baseURL string
}

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicBaseURL is the prefix the storefront can fetch images from,
	// e.g. a CDN in front of the bucket. Defaults to endpoint/bucket.
	PublicBaseURL string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("imagestore: endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("imagestore: access key and secret key are required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("imagestore: bucket is required")
	}

	endpoint := cfg.Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, err
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), cfg.Bucket)
	}

	return &Client{api: api, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload stores one image under folder/ with a unique key and returns the
// public URL for it.
func (c *Client) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), path.Ext(filename))

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &c.bucket,
		Key:           &key,
		Body:          r,
		ContentLength: &size,
		ContentType:   &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("imagestore: upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", c.baseURL, key), nil
}
