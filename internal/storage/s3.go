// Package storage mirrors converted images to S3 when a bucket is
// configured. The local filesystem remains the source of truth; the
// mirror is per-document and counts as a conversion failure when it
// cannot complete.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Uploader copies finished JPEGs into an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Uploader creates an uploader for the given bucket using the
// default AWS credential chain.
func NewS3Uploader(ctx context.Context, bucket, prefix string) (*S3Uploader, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// UploadImages puts each local image under <prefix>/<stem>/<filename>.
// Keys repeat across runs, so re-running a batch overwrites the same
// objects rather than accumulating duplicates.
func (u *S3Uploader) UploadImages(ctx context.Context, stem string, imagePaths []string) error {
	for _, p := range imagePaths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open %s: %w", p, err)
		}
		key := path.Join(u.prefix, stem, filepath.Base(p))
		_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String("image/jpeg"),
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		log.Debug().Str("bucket", u.bucket).Str("key", key).Msg("uploaded image to S3")
	}
	log.Info().Str("bucket", u.bucket).Str("stem", stem).Int("images", len(imagePaths)).Msg("mirrored document images to S3")
	return nil
}
