package snapshot

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/glintkit/glint/internal/errors"
)

// S3Store publishes snapshots to an S3 bucket.
//
// Example:
//
//	client := snapshot.NewS3Client("us-east-1")
//	store := snapshot.NewS3Store(client, "my-bucket", "snapshots/")
//	url, err := store.Save(ctx, "glint-titlebar", html)
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Client builds an S3 client for a region using the SDK's default
// credential resolution. Applications with custom credential needs can
// construct their own client and pass it to NewS3Store.
func NewS3Client(region string, optFns ...func(*s3.Options)) *s3.Client {
	opts := s3.Options{Region: region}
	for _, fn := range optFns {
		fn(&opts)
	}
	return s3.New(opts)
}

// NewS3Store creates an S3Store. The prefix is prepended to every key.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// key builds the object key for a snapshot name.
func (s *S3Store) key(name string) string {
	return s.prefix + objectName(name)
}

// Save uploads the snapshot and returns its object URL.
func (s *S3Store) Save(ctx context.Context, name, html string) (string, error) {
	key := s.key(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", errors.New("E030").
			WithDetailf("put s3://%s/%s", s.bucket, key).
			Wrap(err)
	}

	return "s3://" + s.bucket + "/" + key, nil
}

// Load downloads a snapshot by name.
func (s *S3Store) Load(ctx context.Context, name string) (string, error) {
	key := s.key(name)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", errors.New("E031").
			WithDetailf("get s3://%s/%s", s.bucket, key).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", errors.New("E031").Wrap(err)
	}
	return string(data), nil
}
