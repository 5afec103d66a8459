package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type fakeBucket struct {
	mu      sync.Mutex
	exists  bool
	made    bool
	objects map[string]string
	failOn  string
}

func newFakeBucket(exists bool) *fakeBucket {
	return &fakeBucket{exists: exists, objects: map[string]string{}}
}

func (b *fakeBucket) BucketExists(ctx context.Context, name string) (bool, error) {
	return b.exists, nil
}

func (b *fakeBucket) MakeBucket(ctx context.Context, name string, opts minio.MakeBucketOptions) error {
	b.made = true
	return nil
}

func (b *fakeBucket) FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if object == b.failOn {
		return minio.UploadInfo{}, errors.New("connection reset")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	b.put(object, string(data))
	return minio.UploadInfo{Key: object, Size: int64(len(data))}, nil
}

func (b *fakeBucket) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	b.put(object, string(data))
	return minio.UploadInfo{Key: object, Size: size}, nil
}

func (b *fakeBucket) put(key, value string) {
	b.mu.Lock()
	b.objects[key] = value
	b.mu.Unlock()
}

func writeAudio(t *testing.T, dir, name, body string) recording.Recording {
	t.Helper()
	p := filepath.Join(dir, name+recording.Extension)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return recording.Recording{Name: name, URI: p}
}

func TestBackupUploadsAudioAndTranscripts(t *testing.T) {
	dir := t.TempDir()
	a := writeAudio(t, dir, "Lecture1", "aac-1")
	a.Transcription = "hello"
	b := writeAudio(t, dir, "Lecture2", "aac-2")
	missing := recording.Recording{Name: "Gone", URI: filepath.Join(dir, "gone.m4a")}

	bucket := newFakeBucket(false)
	arch := NewWithBucket(bucket, config.ArchiveConfig{Bucket: "edurecap", Parallel: 2}, logger.NewNop())

	res, err := arch.Backup(context.Background(), []recording.Recording{a, b, missing})
	require.NoError(t, err)

	assert.True(t, bucket.made)
	assert.Equal(t, 2, res.Uploaded)
	assert.Equal(t, []string{"Gone"}, res.Skipped)
	assert.Equal(t, map[string]string{
		"recordings/Lecture1.m4a": "aac-1",
		"recordings/Lecture1.txt": "hello",
		"recordings/Lecture2.m4a": "aac-2",
	}, bucket.objects)
}

func TestBackupFailureIsStorageError(t *testing.T) {
	dir := t.TempDir()
	a := writeAudio(t, dir, "Lecture1", "aac")

	bucket := newFakeBucket(true)
	bucket.failOn = ObjectKey(a)
	arch := NewWithBucket(bucket, config.ArchiveConfig{Bucket: "edurecap"}, logger.NewNop())

	_, err := arch.Backup(context.Background(), []recording.Recording{a})
	require.Error(t, err)
	assert.ErrorIs(t, err, recording.ErrStorage)
	assert.Contains(t, err.Error(), "connection reset")
	assert.False(t, bucket.made)
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(config.ArchiveConfig{}, logger.NewNop())
	assert.Error(t, err)
}
