package polylock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitylab/trident/pkg/repository"
)

func TestStore_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	data := &Data{
		Packages: []repository.Package{
			{ProjectID: "1919", VersionID: "810"},
		},
		InstalledComponents: []string{"net.minecraft"},
	}

	require.NoError(t, store.Write(data, "digest-a"))

	got, ok := store.Read("digest-a")
	require.True(t, ok)
	assert.Equal(t, data.Packages, got.Packages)
	assert.Equal(t, data.InstalledComponents, got.InstalledComponents)
}

func TestStore_Read_MissingFilesIsCleanNegative(t *testing.T) {
	store := New(t.TempDir())
	_, ok := store.Read("anything")
	assert.False(t, ok)
}

func TestStore_Read_DigestMismatchIsCleanNegative(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, store.Write(&Data{}, "digest-a"))

	_, ok := store.Read("digest-b")
	assert.False(t, ok)
}

func TestStore_Read_MalformedJSONIsCleanNegative(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	require.NoError(t, os.WriteFile(store.HashPath, []byte("digest-a"), 0o644))
	require.NoError(t, os.WriteFile(store.DataPath, []byte("{not json"), 0o644))

	_, ok := store.Read("digest-a")
	assert.False(t, ok)
}

func TestNew_PathsUnderHome(t *testing.T) {
	s := New("/root/.trident/instances/pack")
	assert.Equal(t, filepath.ToSlash(s.DataPath), "/root/.trident/instances/pack/polylock.json")
	assert.Equal(t, filepath.ToSlash(s.HashPath), "/root/.trident/instances/pack/polylock.hash")
}
