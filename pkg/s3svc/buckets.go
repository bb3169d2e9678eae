package s3svc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tmarchal/s3console/pkg/dto"
)

// ListBuckets returns all buckets accessible with the endpoint credentials.
func (s *Service) ListBuckets(ctx context.Context) ([]dto.Bucket, error) {
	output, err := s.awsS3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("ListBuckets: error listing buckets: %w", err)
	}

	buckets := make([]dto.Bucket, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		buckets = append(buckets, dto.Bucket{
			Name:         *bucket.Name,
			CreationDate: *bucket.CreationDate,
		})
	}

	s.log.Debug("ListBuckets completed", slog.Int("count", len(buckets)))
	return buckets, nil
}
