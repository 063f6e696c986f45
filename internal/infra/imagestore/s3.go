package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-portal/internal/config"
	"github.com/BruksfildServices01/clinic-portal/internal/imaging"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

const keyPrefix = "patients/"

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store uploads images as objects and links to them through a public
// base URL. Works with AWS and with S3-compatible endpoints.
type S3Store struct {
	client    objectAPI
	bucket    string
	publicURL string
}

// NewS3Client builds a client from static credentials. A custom endpoint
// switches to path-style addressing.
func NewS3Client(cfg *config.Config) *s3.Client {
	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewS3Store(client objectAPI, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, p *models.Patient, img imaging.Image) error {
	key := keyPrefix + uuid.NewString() + ".webp"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String(img.ContentType),
	})
	if err != nil {
		return fmt.Errorf("imagestore: put %s: %w", key, err)
	}

	old := p.ImageKey
	p.ImageKey = key
	p.Image = nil
	p.ImageType = img.ContentType

	if old != "" {
		// the new object is already in place; a stale one is only clutter
		_ = s.deleteKey(ctx, old)
	}
	return nil
}

func (s *S3Store) URL(p *models.Patient) string {
	if p.ImageKey == "" {
		return ""
	}
	return s.publicURL + "/" + p.ImageKey
}

func (s *S3Store) Remove(ctx context.Context, p *models.Patient) error {
	if p.ImageKey == "" {
		return nil
	}
	if err := s.deleteKey(ctx, p.ImageKey); err != nil {
		return err
	}
	p.ImageKey = ""
	p.ImageType = ""
	return nil
}

func (s *S3Store) deleteKey(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("imagestore: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*S3Store)(nil)
