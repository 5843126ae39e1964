package objstore

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hiresift/hiresift/config"
	"github.com/hiresift/hiresift/pkg/logger"
)

// documentExtension filters listings to résumé documents.
const documentExtension = ".pdf"

// Client is a bucket-scoped blob client over MinIO.
type Client struct {
	mc     *minio.Client
	region string
	logger logger.Logger
}

func NewClient(cfg *config.MinioConfig, log logger.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, &StorageError{Op: "connect", Bucket: cfg.Endpoint, Err: err}
	}

	return &Client{
		mc:     mc,
		region: cfg.Region,
		logger: log.Named("objstore"),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet. Succeeds when
// the bucket is already owned by this principal.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := c.mc.BucketExists(ctx, bucket)
	if err != nil {
		return &StorageError{Op: "ensure", Bucket: bucket, Err: err}
	}
	if exists {
		return nil
	}

	if err := c.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return &StorageError{Op: "ensure", Bucket: bucket, Err: err}
	}

	c.logger.Info("Bucket created", logger.String("bucket", bucket))
	return nil
}

// Upload stores a local file under the given key.
func (c *Client) Upload(ctx context.Context, bucket, localPath, key string) error {
	_, err := c.mc.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		c.logger.Error("Failed to upload file",
			logger.String("bucket", bucket),
			logger.String("key", key),
			logger.Error(err),
		)
		return &StorageError{Op: "upload", Bucket: bucket, Key: key, Err: err}
	}

	return nil
}

// List returns the keys of all documents in the bucket, filtered to the
// recognized document extension.
func (c *Client) List(ctx context.Context, bucket string) ([]string, error) {
	keys := make([]string, 0)
	for obj := range c.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, &StorageError{Op: "list", Bucket: bucket, Err: obj.Err}
		}
		if strings.HasSuffix(strings.ToLower(obj.Key), documentExtension) {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// DownloadBytes reads a whole object into memory.
func (c *Client) DownloadBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &StorageError{Op: "download", Bucket: bucket, Key: key, Err: err}
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, &StorageError{Op: "download", Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}

// Empty removes every object in the bucket. Deletion is streamed so large
// buckets do not need a full in-memory listing.
func (c *Client) Empty(ctx context.Context, bucket string) error {
	objectsCh := make(chan minio.ObjectInfo)

	go func() {
		defer close(objectsCh)
		for obj := range c.mc.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err != nil {
				c.logger.Error("Error listing objects for removal",
					logger.String("bucket", bucket),
					logger.Error(obj.Err),
				)
				continue
			}
			objectsCh <- obj
		}
	}()

	for rmErr := range c.mc.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return &StorageError{Op: "empty", Bucket: bucket, Key: rmErr.ObjectName, Err: rmErr.Err}
		}
	}

	c.logger.Info("Bucket emptied", logger.String("bucket", bucket))
	return nil
}
