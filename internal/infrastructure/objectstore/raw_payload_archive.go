package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
)

// RawPayloadArchive stores raw upstream responses as objects keyed by
// source, entity type and entity key. Re-fetching a game overwrites its
// objects.
type RawPayloadArchive struct {
	client Client
	bucket string
	region string
	logger *logging.Logger
}

func NewRawPayloadArchive(client Client, bucket, region string, logger *logging.Logger) *RawPayloadArchive {
	if logger == nil {
		logger = logging.Default()
	}
	return &RawPayloadArchive{client: client, bucket: bucket, region: region, logger: logger}
}

// EnsureBucket creates the archive bucket when it does not exist yet.
func (a *RawPayloadArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}

	a.logger.InfoContext(ctx, "archive bucket created", "bucket", a.bucket)
	return nil
}

func (a *RawPayloadArchive) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	for _, item := range items {
		objectName := ObjectName(item)
		body := []byte(item.Body)

		_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
			ContentType: item.ContentType,
			UserMetadata: map[string]string{
				"Sha256":     item.BodyHash,
				"Source-Url": item.URL,
				"Fetched-At": item.FetchedAt.UTC().Format(time.RFC3339),
			},
		})
		if err != nil {
			return fmt.Errorf("put raw payload object=%s: %w", objectName, err)
		}

		a.logger.DebugContext(ctx, "raw payload archived",
			"bucket", a.bucket,
			"object", objectName,
			"bytes", len(body),
		)
	}

	return nil
}

// ObjectName is "<source>/<entity>/<key>.<ext>", e.g.
// "nhl-statsapi/feed/2018020001.json".
func ObjectName(item rawdata.Payload) string {
	return path.Join(item.Source, item.EntityType, item.EntityKey+extension(item.ContentType))
}

func extension(contentType string) string {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "json"):
		return ".json"
	case strings.Contains(contentType, "html"):
		return ".htm"
	default:
		return ".bin"
	}
}
