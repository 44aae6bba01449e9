package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3SeedState implements SeedState backed by an S3 object.
type S3SeedState struct {
	bucket string
	key    string
	s3     objectGetter
}

func NewS3SeedState(s3Client objectGetter, bucket, key string) *S3SeedState {
	return &S3SeedState{
		bucket: bucket,
		key:    key,
		s3:     s3Client,
	}
}

func (s *S3SeedState) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get seed object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
