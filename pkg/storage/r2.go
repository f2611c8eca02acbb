package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vendora/vendora/config"
)

// r2Uploader stores objects in a Cloudflare R2 bucket through the
// S3-compatible API. Any S3-compatible store (MinIO, Spaces) works with
// the same driver by pointing the account endpoint at it.
type r2Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func newR2Uploader() (*r2Uploader, error) {
	accountID := config.R2AccountID()
	bucket := config.R2Bucket()
	key := config.R2AccessKey()
	secret := config.R2Secret()

	if accountID == "" || bucket == "" || key == "" || secret == "" {
		return nil, fmt.Errorf("storage: r2 driver selected but R2_ACCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY or R2_SECRET is not configured")
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion("auto"),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	baseURL := strings.TrimRight(config.R2PublicURL(), "/")
	if baseURL == "" {
		baseURL = endpoint + "/" + bucket
	}

	return &r2Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (u *r2Uploader) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	key := objectKey(filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   r,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return u.baseURL + "/" + key, nil
}

func (u *r2Uploader) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, u.baseURL+"/")
	if !ok {
		return nil
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
