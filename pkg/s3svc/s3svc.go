// Package s3svc is a thin gateway over an S3-compatible object API for a
// single registered endpoint.
package s3svc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tmarchal/s3console/pkg/dto"
)

// Delimiter is the hierarchy delimiter used for folder-like listings.
const Delimiter = "/"

// Service is the gateway to one S3-compatible endpoint
type Service struct {
	endpoint    dto.Endpoint
	awsS3Client *s3.Client
	log         *slog.Logger
}

// New creates a gateway for the given endpoint. When the record carries
// no access key, credentials come from the environment's default chain
// (env vars, shared config, instance role) instead; credential resolution
// is lazy, so no network I/O happens until the first operation.
// By default the logger is set to write to /dev/null
func New(ctx context.Context, endpoint dto.Endpoint) (*Service, error) {
	staticResolver := aws.EndpointResolverFunc(func(_, _ string) (aws.Endpoint, error) {
		return aws.Endpoint{
			PartitionID:       "aws",
			URL:               endpoint.EndpointURL,
			SigningRegion:     endpoint.Region,
			HostnameImmutable: true,
		}, nil
	})

	var cfg aws.Config
	if endpoint.AccessKey == "" {
		var err error
		cfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(endpoint.Region))
		if err != nil {
			return nil, fmt.Errorf("New: error of LoadDefaultConfig: %w", err)
		}
		cfg.EndpointResolver = staticResolver
	} else {
		cfg = aws.Config{
			Region:           endpoint.Region,
			Credentials:      credentials.NewStaticCredentialsProvider(endpoint.AccessKey, endpoint.SecretKey, ""),
			EndpointResolver: staticResolver,
		}
	}

	return &Service{
		endpoint: endpoint,
		// Path-style addressing: bucket-in-host does not resolve for
		// MinIO and most self-hosted S3 implementations.
		awsS3Client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = true
		}),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// NewWithClient creates a gateway backed by an existing S3 client.
// Used by tests.
func NewWithClient(endpoint dto.Endpoint, client *s3.Client) *Service {
	return &Service{
		endpoint:    endpoint,
		awsS3Client: client,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(log *slog.Logger) {
	s.log = log
}

// Endpoint returns the endpoint record this gateway was built from.
func (s *Service) Endpoint() dto.Endpoint {
	return s.endpoint
}
