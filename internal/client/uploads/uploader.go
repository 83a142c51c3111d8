// Package uploads pushes cow photos to S3-compatible storage (MinIO in
// development) and hands back the public URL to store on the cow record.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	cc "github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("photo uploads are not configured")

type Uploader struct {
	config *cc.Config
}

func NewUploader(config *cc.Config) *Uploader {
	return &Uploader{config: config}
}

// Enabled reports whether a bucket is configured.
func (u *Uploader) Enabled() bool {
	return u.config.S3Bucket != ""
}

func randomStorageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("cows/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (u *Uploader) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(u.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.config.S3AccessKeyID,
			u.config.S3SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if u.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return client, nil
}

// UploadPhoto stores the file at path under a fresh key and returns the URL
// to record on the cow.
func (u *Uploader) UploadPhoto(ctx context.Context, path string) (string, error) {
	if !u.Enabled() {
		return "", ErrDisabled
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening photo: %w", err)
	}
	defer f.Close()

	client, err := u.getClient()
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := u.config.S3Bucket
	key := randomStorageKey(ext)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading photo: %w", err)
	}

	return u.publicURL(key), nil
}

func (u *Uploader) publicURL(key string) string {
	if u.config.S3PublicBaseURL != "" {
		return strings.TrimSuffix(u.config.S3PublicBaseURL, "/") + "/" + key
	}
	if u.config.S3BaseEndpoint != "" {
		return strings.TrimSuffix(u.config.S3BaseEndpoint, "/") + "/" + u.config.S3Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.config.S3Bucket, u.config.S3Region, key)
}
