package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, AttendanceKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, AttendanceKey, `{"2024-06-01":[]}`))
	require.NoError(t, s.Set(ctx, InventoryKey, `[]`))

	v, err := s.Get(ctx, AttendanceKey)
	require.NoError(t, err)
	assert.Equal(t, `{"2024-06-01":[]}`, v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{AttendanceKey, InventoryKey}, keys)

	require.NoError(t, s.Delete(ctx, AttendanceKey))
	_, err = s.Get(ctx, AttendanceKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, err := reopened.Get(context.Background(), InventoryKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestFileStore_MalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	keys, err := s.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_FailedWriteLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	s, err := NewFileStore(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, AttendanceKey, `{}`))

	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, []byte("not a directory"), 0o644))

	assert.Error(t, s.Set(ctx, InventoryKey, `[]`))
	_, err = s.Get(ctx, InventoryKey)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.Delete(ctx, AttendanceKey))
	v, err := s.Get(ctx, AttendanceKey)
	require.NoError(t, err)
	assert.Equal(t, `{}`, v)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	// keys outside the prefix are invisible
	mr.Set("other:key", "x")

	s := NewRedisStore(client, "radiology:")
	exerciseStore(t, s)

	assert.True(t, mr.Exists("radiology:"+InventoryKey))
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var v map[string]int
	ok, err := LoadJSON(ctx, s, "missing", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "bad", "{oops"))
	ok, err = LoadJSON(ctx, s, "bad", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SaveJSON(ctx, s, "good", map[string]int{"a": 1}))
	ok, err = LoadJSON(ctx, s, "good", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"a": 1}, v)
}
