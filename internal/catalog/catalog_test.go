package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/store"
)

type failingStore struct {
	store.Store
	fail bool
}

func (s *failingStore) SaveAll(ctx context.Context, recs []recording.Recording) error {
	if s.fail {
		return fmt.Errorf("%w: disk full", recording.ErrStorage)
	}
	return s.Store.SaveAll(ctx, recs)
}

func rec(name string) recording.Recording {
	return recording.Recording{Name: name, URI: "/docs/" + name + ".m4a"}
}

func newFileCatalog(t *testing.T) (*Catalog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recordings.json")
	c := New(store.NewFile(path), logger.NewNop())
	require.NoError(t, c.Load(context.Background()))
	return c, path
}

func TestAppendAndRemoveMatchReload(t *testing.T) {
	ctx := context.Background()
	c, path := newFileCatalog(t)
	rnd := rand.New(rand.NewSource(7))

	for step := 0; step < 60; step++ {
		if c.Len() == 0 || rnd.Intn(3) > 0 {
			require.NoError(t, c.Append(ctx, rec(fmt.Sprintf("r%d", step))))
			continue
		}
		_, err := c.RemoveAt(ctx, rnd.Intn(c.Len()))
		require.NoError(t, err)
	}

	reloaded := New(store.NewFile(path), logger.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, c.All(), reloaded.All())
}

func TestRemoveSameIndexTwice(t *testing.T) {
	ctx := context.Background()
	c, _ := newFileCatalog(t)
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, c.Append(ctx, rec(n)))
	}

	first, err := c.RemoveAt(ctx, 1)
	require.NoError(t, err)
	second, err := c.RemoveAt(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, "b", first.Name)
	assert.Equal(t, "c", second.Name)
	assert.Equal(t, []recording.Recording{rec("a"), rec("d"), rec("e")}, c.All())
}

func TestRemoveOutOfRange(t *testing.T) {
	c, _ := newFileCatalog(t)
	_, err := c.RemoveAt(context.Background(), 0)
	assert.True(t, errors.Is(err, recording.ErrValidation))

	_, err = c.At(-1)
	assert.True(t, errors.Is(err, recording.ErrValidation))
}

func TestStoreFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Store: store.NewFile(filepath.Join(t.TempDir(), "r.json"))}
	c := New(fs, logger.NewNop())
	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Append(ctx, rec("a")))

	calls := 0
	c.Subscribe(func([]recording.Recording) { calls++ })

	fs.fail = true
	err := c.Append(ctx, rec("b"))
	assert.True(t, errors.Is(err, recording.ErrStorage))
	_, err = c.RemoveAt(ctx, 0)
	assert.True(t, errors.Is(err, recording.ErrStorage))

	assert.Equal(t, []recording.Recording{rec("a")}, c.All())
	assert.Zero(t, calls)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	c, _ := newFileCatalog(t)

	var seen [][]recording.Recording
	unsubscribe := c.Subscribe(func(recs []recording.Recording) { seen = append(seen, recs) })

	require.NoError(t, c.Append(ctx, rec("a")))
	require.NoError(t, c.Append(ctx, rec("b")))
	unsubscribe()
	require.NoError(t, c.Append(ctx, rec("c")))

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 1)
	assert.Len(t, seen[1], 2)

	seen[1][0].Name = "mutated"
	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Name)
}

func TestContains(t *testing.T) {
	c, _ := newFileCatalog(t)
	require.NoError(t, c.Append(context.Background(), rec("Lecture1")))
	assert.True(t, c.Contains("Lecture1"))
	assert.False(t, c.Contains("Lecture2"))
}

func TestObserverMayReadCatalog(t *testing.T) {
	c, _ := newFileCatalog(t)
	lens := []int{}
	c.Subscribe(func([]recording.Recording) { lens = append(lens, c.Len()) })

	require.NoError(t, c.Append(context.Background(), rec("a")))
	assert.Equal(t, []int{1}, lens)
}
