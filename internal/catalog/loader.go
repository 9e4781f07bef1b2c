package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Parse decodes a JSON array of supplier records and builds a Store.
// Malformed records fail the whole load (fail fast) rather than being
// skipped.
func Parse(data []byte) (*Store, error) {
	var suppliers []Supplier
	if err := json.Unmarshal(data, &suppliers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return NewStore(suppliers)
}

// LoadFile loads the catalog from a JSON file on disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", path, err)
	}

	slog.Info("catalog loaded", "source", path, "suppliers", store.Len())
	return store, nil
}

// ObjectStoreConfig holds connection settings for an S3-compatible object
// store holding the catalog JSON.
type ObjectStoreConfig struct {
	Bucket          string
	Key             string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// NewObjectStoreClient creates an S3 client for an S3-compatible endpoint
// (R2, MinIO, or AWS itself) using static credentials.
func NewObjectStoreClient(cfg ObjectStoreConfig) *s3.Client {
	return s3.New(s3.Options{
		Region: "auto",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
	})
}

// ObjectGetter is the subset of the S3 client used by LoadObject, extracted
// so tests can substitute a fake.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadObject loads the catalog from an object in an S3-compatible bucket.
func LoadObject(ctx context.Context, client ObjectGetter, bucket, key string) (*Store, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog object body: %w", err)
	}

	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from s3://%s/%s: %w", bucket, key, err)
	}

	slog.Info("catalog loaded", "source", "s3://"+bucket+"/"+key, "suppliers", store.Len())
	return store, nil
}
