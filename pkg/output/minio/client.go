package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/adrianliechti/wenku/pkg/output"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ output.Provider = &Client{}

// Client stores documents in an S3 compatible bucket. Directories map to
// object prefixes.
type Client struct {
	client *minio.Client

	url    string
	bucket string

	secure    bool
	accessKey string
	secretKey string
}

func New(url, bucket string, options ...Option) (*Client, error) {
	c := &Client{
		url:    url,
		bucket: bucket,
	}

	for _, option := range options {
		option(c)
	}

	if c.bucket == "" {
		return nil, errors.New("invalid bucket")
	}

	endpoint := c.url

	if s, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint = s
		c.secure = true
	}

	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimRight(endpoint, "/")

	if endpoint == "" {
		return nil, errors.New("invalid url")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.accessKey, c.secretKey, ""),
		Secure: c.secure,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	c.client = client

	return c, nil
}

func (c *Client) Mkdir(ctx context.Context, name string) (string, error) {
	if !isValid(name) {
		return "", output.ErrInvalidName
	}

	exists, err := c.client.BucketExists(ctx, c.bucket)

	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"

	if c.secure {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s/", scheme, c.client.EndpointURL().Host, c.bucket, name), nil
}

func (c *Client) Write(ctx context.Context, dir, name string, data []byte) error {
	if !isValid(dir) || !isValid(name) {
		return output.ErrInvalidName
	}

	contentType := mime.TypeByExtension(path.Ext(name))

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.client.PutObject(ctx, c.bucket, path.Join(dir, name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})

	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

func isValid(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}
