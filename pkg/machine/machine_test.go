package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitylab/trident/pkg/profile"
)

func TestCreateProfile_ThenLoad(t *testing.T) {
	m := New(t.TempDir())

	created, err := m.CreateProfile("My Pack!!", WithAuthor("ari"), WithGameVersion("1.20.1"))
	require.NoError(t, err)
	assert.Equal(t, "My Pack!!", created.Name)
	assert.Equal(t, "ari", created.Author)
	require.Len(t, created.Metadata.Components, 1)
	assert.Equal(t, profile.ComponentMinecraft, created.Metadata.Components[0].ID)

	loaded, err := m.LoadProfile("My-Pack")
	require.NoError(t, err)
	assert.Equal(t, created.Name, loaded.Name)
}

func TestCreateProfile_Conflict(t *testing.T) {
	m := New(t.TempDir())
	_, err := m.CreateProfile("dup")
	require.NoError(t, err)

	_, err = m.CreateProfile("dup")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoadProfile_Unreachable(t *testing.T) {
	m := New(t.TempDir())
	_, err := m.LoadProfile("nope")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "My-Pack", sanitizeKey("My Pack!!"))
	assert.Equal(t, "instance", sanitizeKey("   "))
	assert.Equal(t, "..-a-b", sanitizeKey("../a/b"))
	assert.NotContains(t, sanitizeKey("../a/b"), "/")
}
