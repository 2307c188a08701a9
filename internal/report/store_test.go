package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zklens/zklens/internal/config"
)

func TestStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	built := Build(successResult(), 256, 600, "11111111111111111111111111111111", testConfig())
	require.NoError(t, store.Save(built))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, built, loaded)
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStoreLoadCorrupt(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, os.MkdirAll(config.Dir(root), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = store.Raw()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStoreAtomicReplace(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	first := Build(successResult(), 1, 1, "11111111111111111111111111111111", testConfig())
	require.NoError(t, store.Save(first))

	second := Build(successResult(), 256, 600, "11111111111111111111111111111111", testConfig())
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 856, loaded.Proof.TotalSize)

	// no temp files are left behind
	entries, err := os.ReadDir(config.Dir(root))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.Path()), entries[0].Name())
}

func TestStoreRawIsValidJSON(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	require.NoError(t, store.Save(Build(successResult(), 1, 2, "11111111111111111111111111111111", testConfig())))

	raw, err := store.Raw()
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "compute_units")
	assert.Contains(t, decoded, "recent_prioritization_fees")
	assert.Contains(t, decoded, "environment")
}
