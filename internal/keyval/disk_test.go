package keyval_test

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/2beens/vitalstats/internal/keyval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewDiskStore(t *testing.T) {
	_, err := keyval.NewDiskStore("")
	require.Error(t, err)

	// a missing root dir gets created
	rootPath := path.Join(t.TempDir(), "engine-data")
	ds, err := keyval.NewDiskStore(rootPath)
	require.NoError(t, err)
	require.NotNil(t, ds)

	stat, err := os.Stat(rootPath)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestDiskStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	ds, err := keyval.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = ds.Load(ctx, keyval.KeyMeals)
	assert.ErrorIs(t, err, keyval.ErrKeyNotFound)

	data := []byte(`[{"id":"m1","name":"Power Lunch"}]`)
	require.NoError(t, ds.Save(ctx, keyval.KeyMeals, data))

	loaded, err := ds.Load(ctx, keyval.KeyMeals)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)

	// overwrite replaces the whole blob
	data2 := []byte(`[]`)
	require.NoError(t, ds.Save(ctx, keyval.KeyMeals, data2))
	loaded, err = ds.Load(ctx, keyval.KeyMeals)
	require.NoError(t, err)
	assert.Equal(t, data2, loaded)

	require.NoError(t, ds.Delete(ctx, keyval.KeyMeals))
	_, err = ds.Load(ctx, keyval.KeyMeals)
	assert.ErrorIs(t, err, keyval.ErrKeyNotFound)

	// deleting a missing key is not an error
	require.NoError(t, ds.Delete(ctx, keyval.KeyMeals))
}

func TestDiskStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	ds, err := keyval.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", `a\b`, "dot.dot"} {
		_, err = ds.Load(ctx, key)
		assert.Error(t, err, "load key %q", key)
		assert.Error(t, ds.Save(ctx, key, []byte("x")), "save key %q", key)
		assert.Error(t, ds.Delete(ctx, key), "delete key %q", key)
	}
}

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	ms := keyval.NewMemoryStore(0) // falls back to default size

	_, err := ms.Load(ctx, keyval.KeyProfile)
	assert.ErrorIs(t, err, keyval.ErrKeyNotFound)

	data := []byte(`{"name":"Demo User"}`)
	require.NoError(t, ms.Save(ctx, keyval.KeyProfile, data))

	loaded, err := ms.Load(ctx, keyval.KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)

	require.NoError(t, ms.Delete(ctx, keyval.KeyProfile))
	_, err = ms.Load(ctx, keyval.KeyProfile)
	assert.ErrorIs(t, err, keyval.ErrKeyNotFound)
}
