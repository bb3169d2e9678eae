package s3svc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadFile uploads the local file at path to bucket under key.
func (s *Service) UploadFile(ctx context.Context, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("UploadFile: error opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("UploadFile: error of Stat: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fi.Size()),
	}

	if _, err := s.awsS3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("UploadFile: error uploading to S3: %w", err)
	}

	s.log.Debug("UploadFile completed",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int64("size", fi.Size()))
	return nil
}

// DownloadFile fetches bucket/key into the local file at path.
func (s *Service) DownloadFile(ctx context.Context, bucket, key, path string) error {
	output, err := s.awsS3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("DownloadFile: error fetching from S3: %w", err)
	}
	defer output.Body.Close() //nolint:errcheck

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("DownloadFile: error creating %s: %w", path, err)
	}

	if _, err := io.Copy(f, output.Body); err != nil {
		f.Close()      //nolint:errcheck
		os.Remove(path) //nolint:errcheck
		return fmt.Errorf("DownloadFile: error writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("DownloadFile: error closing %s: %w", path, err)
	}

	s.log.Debug("DownloadFile completed",
		slog.String("bucket", bucket),
		slog.String("key", key))
	return nil
}

// CreateFolder creates a folder marker: a zero-byte object whose key ends
// with the delimiter.
func (s *Service) CreateFolder(ctx context.Context, bucket, folderPath string) error {
	if folderPath == "" {
		return fmt.Errorf("CreateFolder: empty folder path") //nolint:err113
	}
	if folderPath[len(folderPath)-1:] != Delimiter {
		folderPath += Delimiter
	}

	_, err := s.awsS3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(folderPath),
	})
	if err != nil {
		return fmt.Errorf("CreateFolder: error creating folder marker: %w", err)
	}

	s.log.Debug("CreateFolder completed",
		slog.String("bucket", bucket),
		slog.String("folder", folderPath))
	return nil
}
