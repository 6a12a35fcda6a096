package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/jenusanjay/imageservice/internal/entity"
)

type Storage struct {
	s      *session.Session
	bucket string
}

type StorageConfig struct {
	Session *session.Session
	Bucket  string
}

func New(c StorageConfig) *Storage {
	return &Storage{
		s:      c.Session,
		bucket: c.Bucket,
	}
}

func (s *Storage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if _, err := s3manager.NewUploader(s.s).UploadWithContext(ctx, &s3manager.UploadInput{
		Body:        bytes.NewReader(data),
		Bucket:      &s.bucket,
		ContentType: &contentType,
		Key:         &key,
	}); err != nil {
		return fmt.Errorf("upload: %w: %w", entity.ErrStorage, err)
	}

	return nil
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	if _, err := s3manager.NewDownloader(s.s).DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey:
				return nil, fmt.Errorf("get object: %w: %w", entity.ErrNotFound, err)
			}
		}

		return nil, fmt.Errorf("get object: %w: %w", entity.ErrStorage, err)
	}

	return buf.Bytes(), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s3.New(s.s).DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("delete: %w: %w", entity.ErrStorage, err)
	}

	return nil
}
