// Package storage removes vehicle images from S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dealerhub/dealership-system/internal/core/domain"
)

// maxBatch is the S3 limit of keys per DeleteObjects call.
const maxBatch = 1000

// Config holds the object storage settings.
type Config struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for MinIO / R2 / LocalStack
	// PublicBaseURL is stripped from image URLs to recover object keys.
	PublicBaseURL string
}

// deleter is the subset of *s3.Client used here.
type deleter interface {
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// ImageStore deletes objects in batches. With no bucket configured every call
// is a no-op.
type ImageStore struct {
	client  deleter
	bucket  string
	baseURL string
}

// NewImageStore builds an ImageStore from the default AWS credential chain.
func NewImageStore(ctx context.Context, cfg Config) (*ImageStore, error) {
	if cfg.Bucket == "" {
		return &ImageStore{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newImageStore(client, cfg), nil
}

func newImageStore(client deleter, cfg Config) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

// Enabled reports whether a bucket is configured.
func (s *ImageStore) Enabled() bool { return s.bucket != "" && s.client != nil }

// Owns reports whether image resolves to a key under dealerID's prefix.
func (s *ImageStore) Owns(dealerID, image string) bool {
	if dealerID == "" {
		return false
	}
	key, ok := s.keyOf(image)
	return ok && strings.HasPrefix(key, dealerID+"/")
}

// Delete removes the images of dealerID. Entries may be object keys or URLs
// under the public base URL; anything outside the dealer's prefix is skipped.
func (s *ImageStore) Delete(ctx context.Context, dealerID string, images []string) error {
	if !s.Enabled() {
		return nil
	}
	keys := s.keys(dealerID, images)

	for start := 0; start < len(keys); start += maxBatch {
		end := min(start+maxBatch, len(keys))

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
		}
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("%w: s3 delete: %v", domain.ErrDependencyUnavailable, err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("%w: s3 delete: %d of %d objects failed, first %s: %s",
				domain.ErrDependencyUnavailable, len(out.Errors), len(ids),
				aws.ToString(first.Key), aws.ToString(first.Message))
		}
	}
	return nil
}

func (s *ImageStore) keys(dealerID string, images []string) []string {
	seen := make(map[string]struct{}, len(images))
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if !s.Owns(dealerID, img) {
			continue
		}
		k, _ := s.keyOf(img)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// keyOf turns a stored image reference into an object key. Only bare keys and
// URLs under the public base URL resolve; other URLs and keys with relative
// segments do not.
func (s *ImageStore) keyOf(image string) (string, bool) {
	image = strings.TrimSpace(image)
	if s.baseURL != "" && strings.HasPrefix(image, s.baseURL+"/") {
		image = strings.TrimPrefix(image, s.baseURL+"/")
	} else if strings.Contains(image, "://") {
		return "", false
	}
	key := strings.TrimPrefix(image, "/")
	if key == "" || strings.ContainsAny(key, "?#\\") {
		return "", false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", false
		}
	}
	return key, true
}
