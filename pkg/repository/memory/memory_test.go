package memory

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitylab/trident/pkg/repository"
)

func loadFixture(t *testing.T) *Repository {
	t.Helper()
	content, err := os.ReadFile("testdata/modrinth.yaml")
	require.NoError(t, err)
	repo, err := NewFromYAML("modrinth", content)
	require.NoError(t, err)
	return repo
}

func TestRepository_ResolveExactVersion(t *testing.T) {
	repo := loadFixture(t)
	pkg, err := repo.Resolve(context.Background(), "sodium", "mc1.20.1-0.5.8", repository.QueryContext{})
	require.NoError(t, err)
	assert.Equal(t, "Sodium", pkg.ProjectName)
	assert.Len(t, pkg.Dependencies, 1)
}

func TestRepository_ResolveLatestInContext(t *testing.T) {
	repo := loadFixture(t)
	pkg, err := repo.Resolve(context.Background(), "fabric-api", "*", repository.QueryContext{
		GameVersion: "1.20.1",
		ModLoader:   "net.fabricmc.fabric-loader",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.92.0+1.20.1", pkg.VersionID)
}

func TestRepository_ResolveLatestFiltersIncompatibleLoader(t *testing.T) {
	repo := loadFixture(t)
	_, err := repo.Resolve(context.Background(), "fabric-api", "*", repository.QueryContext{
		GameVersion: "1.20.1",
		ModLoader:   "net.minecraftforge",
	})
	require.Error(t, err)
	assert.True(t, repository.Is(err, repository.KindNotFound))
}

func TestRepository_ResolveUnknownProject(t *testing.T) {
	repo := loadFixture(t)
	_, err := repo.Resolve(context.Background(), "nonexistent", "1", repository.QueryContext{})
	require.Error(t, err)
	assert.True(t, repository.Is(err, repository.KindNotFound))
}

func TestRepository_ResolveMissingVersion(t *testing.T) {
	repo := loadFixture(t)
	_, err := repo.Resolve(context.Background(), "sodium", "", repository.QueryContext{})
	require.Error(t, err)
	assert.True(t, repository.Is(err, repository.KindInvalidFormat))
}

func TestRepository_Search(t *testing.T) {
	repo := loadFixture(t)
	projects, err := repo.Search(context.Background(), "sod", repository.QueryContext{})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "sodium", projects[0].ID)
}
