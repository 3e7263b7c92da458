package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"paperdesk/models"
)

// S3Config holds the bucket settings for manuscript uploads. Works with
// any S3-compatible endpoint (AWS, R2, MinIO).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	BaseURL   string // Public URL base; defaults to endpoint/bucket
}

// S3Uploader stores manuscript files in an S3-compatible bucket
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Uploader builds an uploader from config
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required for S3 uploads")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SubmitManuscript uploads the file under a key derived from the
// submission id and returns its public URL
func (u *S3Uploader) SubmitManuscript(ctx context.Context, sub *models.Submission, meta FileMeta, r io.Reader) (*Result, error) {
	fileID := uuid.New().String()
	key := fmt.Sprintf("manuscripts/%s/%s_%s", sub.ID, fileID, meta.Name)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(meta.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload manuscript: %w", err)
	}

	return &Result{
		Success: true,
		FileUpload: FileUpload{
			FileID:   fileID,
			FileName: meta.Name,
			FileSize: meta.Size,
			FileURL:  u.baseURL + "/" + key,
		},
	}, nil
}
