package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"microdrama-go/internal/config"
	"microdrama-go/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ArtworkResolver 把封面、缩略图的存储引用转换成可访问的 URL。
// 绝对 http(s) 地址原样返回；其余视为 artwork bucket 中的对象键，生成预签名下载地址。
type ArtworkResolver struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewClient 创建 MinIO 客户端；配置了 Region 时预签名不需要访问服务端
func NewClient(cfg *config.MinIOConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// Open 创建客户端并确保 artwork bucket 存在
func Open(ctx context.Context, cfg *config.MinIOConfig) (*ArtworkResolver, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.ArtworkBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.ArtworkBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.ArtworkBucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.ArtworkBucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.ArtworkBucket))
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.ArtworkBucket),
	)

	return NewArtworkResolver(client, cfg.ArtworkBucket, cfg.PresignDuration()), nil
}

// NewArtworkResolver 使用已有客户端创建 resolver，client 为 nil 时不做任何转换
func NewArtworkResolver(client *minio.Client, bucket string, expiry time.Duration) *ArtworkResolver {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &ArtworkResolver{client: client, bucket: bucket, expiry: expiry}
}

// Resolve 解析单个引用。nil 与空字符串原样返回；预签名失败时返回原引用
func (r *ArtworkResolver) Resolve(ctx context.Context, ref *string) *string {
	if r == nil || r.client == nil || ref == nil || *ref == "" || IsAbsoluteURL(*ref) {
		return ref
	}

	objectName := strings.TrimPrefix(*ref, "/")
	objectName = strings.TrimPrefix(objectName, r.bucket+"/")

	presigned, err := r.client.PresignedGetObject(ctx, r.bucket, objectName, r.expiry, url.Values{})
	if err != nil {
		logger.Warn("Failed to presign artwork, returning stored reference",
			zap.String("bucket", r.bucket),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return ref
	}

	resolved := presigned.String()
	return &resolved
}

// IsAbsoluteURL 是否为 http(s) 绝对地址
func IsAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
