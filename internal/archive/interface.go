package archive

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// Bucket is the part of *minio.Client the archiver uses.
type Bucket interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Result summarizes one backup run.
type Result struct {
	Uploaded int
	Skipped  []string
}
