package archive

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
)

// Archiver backs up saved recordings to an S3-compatible bucket.
type Archiver struct {
	bucket   Bucket
	name     string
	region   string
	parallel int
	logger   logger.Logger
}

// New connects to the MinIO endpoint named in cfg.
func New(cfg config.ArchiveConfig, log logger.Logger) (*Archiver, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("archive endpoint is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return NewWithBucket(client, cfg, log), nil
}

func NewWithBucket(bucket Bucket, cfg config.ArchiveConfig, log logger.Logger) *Archiver {
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = 1
	}
	return &Archiver{
		bucket:   bucket,
		name:     cfg.Bucket,
		region:   cfg.Region,
		parallel: parallel,
		logger:   log,
	}
}
