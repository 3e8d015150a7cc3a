package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"weighbridge-backend/internal/config"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArchiveService keeps a copy of exported tickets in S3-compatible storage
type ArchiveService struct {
	client objectPutter
	bucket string
	prefix string
}

func NewArchiveService(ctx context.Context, cfg *config.Config) (*ArchiveService, error) {
	a := cfg.Archive
	if a.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is not configured")
	}
	region := a.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if a.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(a.AccessKey, a.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if a.Endpoint != "" {
			o.BaseEndpoint = aws.String(a.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &ArchiveService{client: client, bucket: a.Bucket, prefix: a.Prefix}, nil
}

// ObjectKey places a file under prefix/user/ticket/
func (s *ArchiveService) ObjectKey(userID int, file *ExportFile) string {
	return path.Join(strings.Trim(s.prefix, "/"), strconv.Itoa(userID), file.TicketID, file.Filename)
}

func (s *ArchiveService) Archive(ctx context.Context, userID int, file *ExportFile) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.ObjectKey(userID, file)),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", file.Filename, err)
	}
	return nil
}
