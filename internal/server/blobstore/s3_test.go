package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	s := NewS3StoreWithClient(fake, S3Options{Bucket: "media", PublicBaseURL: "https://cdn.example/"})

	url, err := s.Put(context.Background(), "1-abc.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/uploads/1-abc.png", url)
	assert.Equal(t, "media", aws.ToString(fake.put.Bucket))
	assert.Equal(t, "uploads/1-abc.png", aws.ToString(fake.put.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.put.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fake.put.ContentLength))
	assert.Equal(t, "png", fake.body)
}

func TestS3Store_URLFallsBackToEndpoint(t *testing.T) {
	s := NewS3StoreWithClient(&fakeS3{}, S3Options{Bucket: "media", BaseEndpoint: "http://minio:9000/"})

	url, err := s.Put(context.Background(), "k.txt", strings.NewReader(""), 0, "")
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/media/uploads/k.txt", url)
}

func TestS3Store_DeleteAndErrors(t *testing.T) {
	fake := &fakeS3{}
	s := NewS3StoreWithClient(fake, S3Options{Bucket: "media"})

	require.NoError(t, s.Delete(context.Background(), "k.txt"))
	assert.Equal(t, []string{"uploads/k.txt"}, fake.deleted)

	fake.err = errors.New("boom")
	_, err := s.Put(context.Background(), "k.txt", strings.NewReader(""), 0, "")
	require.ErrorIs(t, err, fake.err)
	require.ErrorIs(t, s.Delete(context.Background(), "k.txt"), fake.err)
}

func TestNewS3Store_AppliesOptions(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "eu-central-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("static credentials not applied")
		}
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	s, err := NewS3Store(context.Background(), S3Options{
		AccessKey: "ak", SecretKey: "sk", Region: "eu-central-1", Bucket: "media", BaseEndpoint: "http://minio:9000",
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_LoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Store(context.Background(), S3Options{Region: "us-east-1"})
	require.Error(t, err)
}
