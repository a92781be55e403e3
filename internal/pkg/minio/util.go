package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// GetObjectBytes 读取对象完整内容
func GetObjectBytes(ctx context.Context, objectName string) ([]byte, error) {
	if Client == nil {
		return nil, fmt.Errorf("minio client is not initialized")
	}

	obj, err := Client.GetObject(ctx, DatasetBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectName, err)
	}
	return data, nil
}

// PutObjectBytes 上传对象
func PutObjectBytes(ctx context.Context, objectName string, data []byte, contentType string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.PutObject(ctx, DatasetBucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return nil
}
