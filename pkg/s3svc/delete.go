package s3svc

import (
	"context"
	"crypto/md5" //nolint:gosec // MD5 required by S3 API for Content-MD5 header, not for cryptographic security
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// maxBatchSize is the S3 DeleteObjects limit per request.
const maxBatchSize = 1000

// DeleteObject deletes a single object.
func (s *Service) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := s.awsS3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("DeleteObject: error deleting from S3: %w", err)
	}

	s.log.Debug("DeleteObject completed",
		slog.String("bucket", bucket), slog.String("key", key))
	return nil
}

// deletePayload mirrors the XML body of a DeleteObjects request. It is
// used to compute the Content-MD5 header required by MinIO and some other
// S3-compatible services.
type deletePayload struct {
	XMLName xml.Name       `xml:"Delete"`
	Objects []deleteObject `xml:"Object"`
	Quiet   bool           `xml:"Quiet"`
}

type deleteObject struct {
	Key string `xml:"Key"`
}

// computeDeleteContentMD5 computes the MD5 hash of the DeleteObjects
// request body, base64 encoded as S3 expects it.
func computeDeleteContentMD5(objects []types.ObjectIdentifier, quiet bool) (string, error) {
	payload := deletePayload{
		Objects: make([]deleteObject, len(objects)),
		Quiet:   quiet,
	}
	for i, obj := range objects {
		payload.Objects[i] = deleteObject{Key: *obj.Key}
	}

	xmlBytes, err := xml.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal delete payload: %w", err)
	}

	hash := md5.Sum(xmlBytes) //nolint:gosec // MD5 required by S3 API for Content-MD5 header
	return base64.StdEncoding.EncodeToString(hash[:]), nil
}

// addContentMD5Middleware creates a middleware that adds the Content-MD5
// header to the request.
func addContentMD5Middleware(contentMD5 string) func(*s3.Options) {
	return func(o *s3.Options) {
		o.APIOptions = append(o.APIOptions, func(stack *middleware.Stack) error {
			return stack.Finalize.Add(
				middleware.FinalizeMiddlewareFunc(
					"AddContentMD5",
					func(
						ctx context.Context,
						in middleware.FinalizeInput,
						next middleware.FinalizeHandler,
					) (middleware.FinalizeOutput, middleware.Metadata, error) {
						req, ok := in.Request.(*smithyhttp.Request)
						if ok {
							req.Header.Set("Content-MD5", contentMD5)
						}
						return next.HandleFinalize(ctx, in)
					},
				),
				middleware.Before,
			)
		})
	}
}

// DeleteObjects deletes up to 1000 objects in a single batch request.
func (s *Service) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if len(keys) > maxBatchSize {
		//nolint:err113 // Dynamic error provides useful context about batch size violation
		return fmt.Errorf("DeleteObjects: too many keys (%d), maximum is %d", len(keys), maxBatchSize)
	}

	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		keyCopy := key
		objects[i] = types.ObjectIdentifier{Key: &keyCopy}
	}

	quiet := false
	input := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(quiet),
		},
	}

	// Content-MD5 header for MinIO compatibility.
	contentMD5, err := computeDeleteContentMD5(objects, quiet)
	if err != nil {
		return fmt.Errorf("DeleteObjects: failed to compute Content-MD5: %w", err)
	}

	output, err := s.awsS3Client.DeleteObjects(ctx, input, addContentMD5Middleware(contentMD5))
	if err != nil {
		return fmt.Errorf("DeleteObjects: error deleting from S3: %w", err)
	}

	if len(output.Errors) > 0 {
		for _, deleteError := range output.Errors {
			s.log.Error("Failed to delete object",
				slog.String("key", aws.ToString(deleteError.Key)),
				slog.String("code", aws.ToString(deleteError.Code)),
				slog.String("message", aws.ToString(deleteError.Message)))
		}
		//nolint:err113 // Dynamic error provides useful context about partial deletion failures
		return fmt.Errorf("DeleteObjects: %d of %d objects failed to delete", len(output.Errors), len(keys))
	}

	s.log.Debug("DeleteObjects completed",
		slog.String("bucket", bucket), slog.Int("count", len(keys)))
	return nil
}

// DeleteFolder removes every object whose key starts with the given
// folder prefix, batching the deletes.
func (s *Service) DeleteFolder(ctx context.Context, bucket, folderPrefix string) error {
	keys, err := s.ListAllKeys(ctx, bucket, folderPrefix)
	if err != nil {
		return fmt.Errorf("DeleteFolder: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	for start := 0; start < len(keys); start += maxBatchSize {
		end := min(start+maxBatchSize, len(keys))
		if err := s.DeleteObjects(ctx, bucket, keys[start:end]); err != nil {
			return fmt.Errorf("DeleteFolder: %w", err)
		}
	}

	s.log.Debug("DeleteFolder completed",
		slog.String("bucket", bucket),
		slog.String("prefix", folderPrefix),
		slog.Int("deleted", len(keys)))
	return nil
}
