package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrBucketMissing 表示配置的 Bucket 不存在，重试无法恢复。
var ErrBucketMissing = errors.New("storage bucket missing")

// s3Code 提取 MinIO/S3 错误码，统一为小写。
func s3Code(err error) string {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return strings.ToLower(strings.TrimSpace(resp.Code))
	}
	return ""
}

// IsNoSuchKey 判断错误是否表示对象不存在。
func IsNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	switch s3Code(err) {
	case "nosuchkey", "notfound":
		return true
	case "":
		// 网关可能只留下错误文本
		msg := strings.ToLower(err.Error())
		return strings.Contains(msg, "nosuchkey") || strings.Contains(msg, "specified key does not exist")
	}
	return false
}

// IsNoSuchBucket 判断错误是否表示 Bucket 不存在。
func IsNoSuchBucket(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBucketMissing) {
		return true
	}
	switch s3Code(err) {
	case "nosuchbucket":
		return true
	case "":
		msg := strings.ToLower(err.Error())
		return strings.Contains(msg, "nosuchbucket") || strings.Contains(msg, "specified bucket does not exist")
	}
	return false
}

// wrapWriteError 将 Bucket 缺失统一为 ErrBucketMissing，其余错误原样包装。
func wrapWriteError(bucket, objectName string, err error) error {
	if IsNoSuchBucket(err) {
		return fmt.Errorf("put object %q: %w: %s", objectName, ErrBucketMissing, bucket)
	}
	return fmt.Errorf("put object %q: %w", objectName, err)
}
