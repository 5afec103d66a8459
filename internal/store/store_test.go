package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

var sample = []recording.Recording{
	{Name: "Lecture1", URI: "/docs/Lecture1.m4a", Transcription: "hello"},
	{Name: "Lecture2", URI: "/docs/Lecture2.m4a"},
	{Name: "Lecture3", URI: "/docs/Lecture3.m4a", Transcription: "third"},
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "recordings.json")
	s := NewFile(path)

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SaveAll(ctx, sample))

	got, err = NewFile(path).LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	require.NoError(t, s.SaveAll(ctx, sample[:1]))
	got, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample[:1], got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recordings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFile(path).LoadAll(context.Background())
	assert.True(t, errors.Is(err, recording.ErrStorage))
}

func TestFileStoreSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recordings.json")
	require.NoError(t, NewFile(path).SaveAll(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	s := NewRedis(db, "recordings")

	mock.ExpectGet("recordings").RedisNil()
	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	data, err := encode(sample)
	require.NoError(t, err)
	mock.ExpectSet("recordings", string(data), 0).SetVal("OK")
	require.NoError(t, s.SaveAll(ctx, sample))

	mock.ExpectGet("recordings").SetVal(string(data))
	got, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreFailure(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	s := NewRedis(db, "recordings")

	mock.ExpectGet("recordings").SetErr(errors.New("connection refused"))
	_, err := s.LoadAll(ctx)
	assert.True(t, errors.Is(err, recording.ErrStorage))

	data, _ := encode(sample)
	mock.ExpectSet("recordings", string(data), 0).SetErr(errors.New("READONLY"))
	err = s.SaveAll(ctx, sample)
	assert.True(t, errors.Is(err, recording.ErrStorage))
}

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "edurecap.sqlite")

	s, err := OpenSQL(sqlite.Open(path))
	require.NoError(t, err)

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SaveAll(ctx, sample))
	require.NoError(t, s.SaveAll(ctx, []recording.Recording{sample[2], sample[0]}))
	require.NoError(t, s.Close())

	reopened, err := OpenSQL(sqlite.Open(path))
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []recording.Recording{sample[2], sample[0]}, got)

	require.NoError(t, reopened.SaveAll(ctx, nil))
	got, err = reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
