package purl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat_RoundTrip(t *testing.T) {
	cases := []Purl{
		New("curseforge", "1919", "810"),
		New("modrinth", "sodium", LatestVersion),
		New("m", "X", "1"),
	}
	for _, p := range cases {
		got, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParse_MissingVersionIsAllowed(t *testing.T) {
	p, err := Parse("pkg:curseforge/1919")
	require.NoError(t, err)
	assert.Equal(t, "", p.Version)
	assert.Equal(t, "curseforge", p.Repo)
	assert.Equal(t, "1919", p.Project)
}

func TestParse_InvalidFormat(t *testing.T) {
	cases := []string{
		"",
		"curseforge/1919@810",
		"pkg:",
		"pkg:/1919@810",
		"pkg:curseforge/",
		"pkg:curseforge/@810",
	}
	for _, c := range cases {
		_, err := Parse(c)
		assert.True(t, errors.Is(err, ErrInvalidFormat), "case %q", c)
	}
}

func TestIsLatest(t *testing.T) {
	p, err := Parse("pkg:modrinth/sodium@*")
	require.NoError(t, err)
	assert.True(t, p.IsLatest())

	p, err = Parse("pkg:modrinth/sodium@1.0")
	require.NoError(t, err)
	assert.False(t, p.IsLatest())
}
