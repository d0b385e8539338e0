package spaces

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Root     string `toml:"root"`
	Endpoint string `toml:"endpoint"`
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Service reads dataset objects from a Spaces (S3 compatible) bucket.
type Service struct {
	client objectGetter
	bucket string
	root   string
}

func NewService(ctx context.Context, cfg SpacesConfig) (*Service, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", cfg.Region)
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load spaces config: %w", err)
	}

	return newService(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Root), nil
}

func newService(client objectGetter, bucket, root string) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		root:   strings.Trim(root, "/"),
	}
}

// Open returns the body of the object stored under key, relative to the
// configured root. The caller closes it.
func (s *Service) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	fullKey := s.objectKey(key)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", s.bucket, fullKey, err)
	}
	return out.Body, nil
}

func (s *Service) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if s.root == "" {
		return key
	}
	return path.Join(s.root, key)
}

func (s *Service) Bucket() string {
	return s.bucket
}
