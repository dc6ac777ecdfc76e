package snapshots

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "snapshot key is empty"},
		{name: "whitespace", key: "   ", wantErr: "snapshot key is empty"},
		{name: "absolute", key: "/absolute/path.html", wantErr: "invalid snapshot key"},
		{name: "traversal", key: "../escape.html", wantErr: "invalid snapshot key"},
		{name: "deep traversal", key: "../../etc/passwd", wantErr: "invalid snapshot key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Put(context.Background(), tc.key, "<html></html>")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "sessions/sess-1/dashboard.html"
	want := "<!DOCTYPE html><html></html>"

	path, err := store.Put(context.Background(), key, want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, key), path)

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(snapshotFileMode), info.Mode().Perm())
}

func TestStoreDeleteIsIdempotentWhenSnapshotMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "sessions/sess-1/dashboard.html"

	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Delete(context.Background(), key))
}
