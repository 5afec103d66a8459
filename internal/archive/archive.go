package archive

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

const prefix = "recordings"

// ObjectKey is where the audio payload of a recording is stored.
func ObjectKey(rec recording.Recording) string {
	return path.Join(prefix, rec.Name+recording.Extension)
}

func transcriptKey(rec recording.Recording) string {
	return path.Join(prefix, rec.Name+".txt")
}

// Backup uploads every recording's audio, and its transcription when there is
// one. Recordings whose audio is missing on disk are skipped. The first upload
// failure cancels the rest.
func (a *Archiver) Backup(ctx context.Context, recs []recording.Recording) (Result, error) {
	if err := a.ensureBucket(ctx); err != nil {
		return Result{}, err
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallel)

	for _, rec := range recs {
		if _, err := os.Stat(rec.URI); err != nil {
			a.logger.Warn(ctx, "Skipping %s: %v", rec.Name, err)
			result.Skipped = append(result.Skipped, rec.Name)
			continue
		}

		g.Go(func() error {
			if err := a.upload(gCtx, rec); err != nil {
				return fmt.Errorf("backup %s: %w", rec.Name, err)
			}
			mu.Lock()
			result.Uploaded++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("%w: %v", recording.ErrStorage, err)
	}
	a.logger.Info(ctx, "Backed up %d recordings to %s", result.Uploaded, a.name)
	return result, nil
}

func (a *Archiver) upload(ctx context.Context, rec recording.Recording) error {
	_, err := a.bucket.FPutObject(ctx, a.name, ObjectKey(rec), rec.URI, minio.PutObjectOptions{
		ContentType:  "audio/m4a",
		UserMetadata: map[string]string{"name": rec.Name},
	})
	if err != nil {
		return err
	}

	if strings.TrimSpace(rec.Transcription) == "" {
		return nil
	}
	_, err = a.bucket.PutObject(ctx, a.name, transcriptKey(rec), strings.NewReader(rec.Transcription), int64(len(rec.Transcription)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	return err
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	exists, err := a.bucket.BucketExists(ctx, a.name)
	if err != nil {
		return fmt.Errorf("%w: check bucket: %v", recording.ErrStorage, err)
	}
	if exists {
		return nil
	}
	if err := a.bucket.MakeBucket(ctx, a.name, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("%w: create bucket: %v", recording.ErrStorage, err)
	}
	a.logger.Info(ctx, "Created bucket %s", a.name)
	return nil
}
