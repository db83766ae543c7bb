// dao/object_dao.go
package dao

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	mg_errors "github.com/campusweb/mediagate/errors"
	logger "github.com/campusweb/mediagate/logging"
	"github.com/campusweb/mediagate/model"
)

// ObjectDAO wraps the media bucket with get/put by key.
type ObjectDAO struct {
	Client *minio.Client
	Bucket string
}

func NewObjectDAO(client *minio.Client, bucket string) *ObjectDAO {
	return &ObjectDAO{Client: client, Bucket: bucket}
}

// GetObject fetches one object. A missing key yields ErrObjectNotFound;
// transport failures yield ErrStorageUnavailable.
func (dao *ObjectDAO) GetObject(ctx context.Context, key string) (*model.StoredObject, error) {
	obj, err := dao.Client.GetObject(ctx, dao.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		logger.Error("Failed to open object", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStorageUnavailable, err)
	}
	defer obj.Close()

	// Stat surfaces NoSuchKey before any body read.
	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			logger.Debug("Object not found", zap.String("key", key))
			return nil, mg_errors.ErrObjectNotFound
		}
		logger.Error("Failed to stat object", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStorageUnavailable, err)
	}

	body, err := io.ReadAll(obj)
	if err != nil {
		logger.Error("Failed to read object body", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", mg_errors.ErrStorageUnavailable, err)
	}

	return &model.StoredObject{
		Body:        body,
		ContentType: info.ContentType,
		Metadata:    info.UserMetadata,
	}, nil
}

// PutObject persists an object with its content type and user metadata.
// Writes are content-deterministic for identical inputs, so a concurrent
// duplicate write is benign.
func (dao *ObjectDAO) PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	_, err := dao.Client.PutObject(ctx, dao.Bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		logger.Error("Failed to store object", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", mg_errors.ErrStorageUnavailable, err)
	}

	logger.Debug("Stored object", zap.String("key", key), zap.Int("bytes", len(body)))
	return nil
}
