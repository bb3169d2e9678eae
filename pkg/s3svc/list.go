package s3svc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object is one raw content entry of a delimiter-grouped listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Listing is the normalized result of a delimiter-grouped listing:
// the backend's synthetic folders (common prefixes) plus the literal
// objects directly under the queried prefix, aggregated across every
// backend page.
type Listing struct {
	CommonPrefixes []string
	Contents       []Object
}

// ListObjects lists objects under prefix in the given bucket, grouped by
// delimiter. Every backend page is drained before returning; any paginator
// error aborts the whole listing with no partial result.
func (s *Service) ListObjects(ctx context.Context, bucket, prefix, delimiter string) (Listing, error) {
	var result Listing

	paginator := s3.NewListObjectsV2Paginator(s.awsS3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String(delimiter),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return Listing{}, fmt.Errorf("ListObjects: error of paginator.NextPage: %w", err)
		}
		for _, cp := range page.CommonPrefixes {
			result.CommonPrefixes = append(result.CommonPrefixes, *cp.Prefix)
		}
		for _, obj := range page.Contents {
			result.Contents = append(result.Contents, Object{
				Key:          *obj.Key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	s.log.Debug("ListObjects completed",
		slog.String("bucket", bucket),
		slog.String("prefix", prefix),
		slog.Int("folders", len(result.CommonPrefixes)),
		slog.Int("objects", len(result.Contents)))
	return result, nil
}

// ListAllKeys returns every object key under prefix, without delimiter
// grouping. Used to expand a folder prefix before a batch delete.
func (s *Service) ListAllKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.awsS3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("ListAllKeys: error of paginator.NextPage: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}
