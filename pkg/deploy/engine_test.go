package deploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitylab/trident/pkg/deploy/deploytest"
	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/profile"
	"github.com/gravitylab/trident/pkg/repository"
	"github.com/gravitylab/trident/pkg/resolve"
)

func writeInstance(t *testing.T, dir string, md profile.Metadata) *instance.Instance {
	t.Helper()
	p := &profile.Profile{Name: "pack", Metadata: md}
	encoded, err := profile.ToYAML(p)
	require.NoError(t, err)

	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	inst, err := instance.Load(path)
	require.NoError(t, err)
	return inst
}

type stubRepository struct {
	label repository.Label
	pkg   repository.Package
}

func (s *stubRepository) Label() repository.Label { return s.label }
func (s *stubRepository) Resolve(context.Context, string, string, repository.QueryContext) (repository.Package, error) {
	return s.pkg, nil
}
func (s *stubRepository) Search(context.Context, string, repository.QueryContext) ([]repository.Project, error) {
	return nil, nil
}

func lookupFor(r *stubRepository) resolve.Lookup {
	return func(label string) (repository.Repository, bool) {
		if label == string(r.label) {
			return r, true
		}
		return nil, false
	}
}

// runToCompletion drives the engine until it reports terminal, performing
// every handle it yields.
func runToCompletion(t *testing.T, engine *Engine) []StageKind {
	t.Helper()
	var seen []StageKind
	for i := 0; i < 100; i++ {
		stage, ok := engine.Next()
		if !ok {
			return seen
		}
		seen = append(seen, stage.Kind)
		switch stage.Kind {
		case StageCheck:
			stage.Check.Perform()
		case StageResolve:
			for {
				h, more := stage.Resolve.Next()
				if !more {
					break
				}
				_, _ = h.Perform(context.Background())
			}
		case StageInstall:
			require.NoError(t, stage.Install.Perform(context.Background()))
		case StageDownload:
			require.NoError(t, stage.Download.Perform(context.Background()))
		case StageRestore:
			require.NoError(t, stage.Restore.Perform(context.Background()))
		}
	}
	t.Fatal("engine did not terminate within 100 advances")
	return nil
}

// Scenario 1: fresh deploy, empty lock, no dependencies.
func TestEngine_FreshDeploy(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{
		Layers: []profile.Layer{{Summary: "base", Enabled: true, Content: []string{"pkg:curseforge/1919@810"}}},
	}
	inst := writeInstance(t, dir, md)

	repo := &stubRepository{label: "curseforge", pkg: repository.Package{ProjectID: "1919", VersionID: "810"}}
	engine := NewEngine(inst, lookupFor(repo), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))

	stages := runToCompletion(t, engine)
	assert.Equal(t, []StageKind{StageCheck, StageResolve, StageInstall, StageDownload, StageRestore}, stages)

	ctx := engine.Context()
	require.Len(t, ctx.Resolved, 1)
	assert.Equal(t, "1919", ctx.Resolved[0].ProjectID)
	assert.True(t, ctx.Restored)

	hashBytes, err := os.ReadFile(filepath.Join(inst.Home(), "polylock.hash"))
	require.NoError(t, err)
	assert.NotEmpty(t, hashBytes)
}

// Scenario 2: cached lock hit skips Resolve and Install.
func TestEngine_CachedLockHit(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{
		Layers: []profile.Layer{{Summary: "base", Enabled: true, Content: []string{"pkg:curseforge/1919@810"}}},
	}
	inst := writeInstance(t, dir, md)
	repo := &stubRepository{label: "curseforge", pkg: repository.Package{ProjectID: "1919", VersionID: "810"}}

	first := NewEngine(inst, lookupFor(repo), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))
	runToCompletion(t, first)

	// Reload a fresh instance/engine pointed at the same home directory.
	inst2, err := instance.Load(inst.ProfilePath())
	require.NoError(t, err)
	second := NewEngine(inst2, lookupFor(repo), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))

	stages := runToCompletion(t, second)
	assert.Equal(t, []StageKind{StageCheck, StageDownload, StageRestore}, stages)
	assert.NotContains(t, stages, StageResolve)
	assert.NotContains(t, stages, StageInstall)
}

// Scenario 3: forced rebuild ignores a valid cache.
func TestEngine_ForcedRebuildIgnoresCache(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{
		Layers: []profile.Layer{{Summary: "base", Enabled: true, Content: []string{"pkg:curseforge/1919@810"}}},
	}
	inst := writeInstance(t, dir, md)
	repo := &stubRepository{label: "curseforge", pkg: repository.Package{ProjectID: "1919", VersionID: "810"}}

	first := NewEngine(inst, lookupFor(repo), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))
	runToCompletion(t, first)

	inst2, err := instance.Load(inst.ProfilePath())
	require.NoError(t, err)
	forced := NewEngine(inst2, lookupFor(repo), WithForce(true), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))

	stages := runToCompletion(t, forced)
	assert.Equal(t, []StageKind{StageResolve, StageInstall, StageDownload, StageRestore}, stages)
	assert.True(t, forced.Context().Checked, "forced engine still marks checked true")
}

// Scenario 7: digest mismatch invalidates the cache.
func TestEngine_DigestMismatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{
		Layers: []profile.Layer{{Summary: "base", Enabled: true, Content: []string{"pkg:curseforge/1919@810"}}},
	}
	inst := writeInstance(t, dir, md)
	repo := &stubRepository{label: "curseforge", pkg: repository.Package{ProjectID: "1919", VersionID: "810"}}

	first := NewEngine(inst, lookupFor(repo), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))
	runToCompletion(t, first)

	// Mutate the profile on disk so its digest no longer matches the lock.
	md.Layers[0].Content = append(md.Layers[0].Content, "pkg:curseforge/2@1")
	mutated := &profile.Profile{Name: "pack", Metadata: md}
	encoded, err := profile.ToYAML(mutated)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(inst.ProfilePath(), encoded, 0o644))

	inst2, err := instance.Load(inst.ProfilePath())
	require.NoError(t, err)
	repo2 := &stubRepository{label: "curseforge", pkg: repository.Package{ProjectID: "1919", VersionID: "810"}}
	second := NewEngine(inst2, lookupFor(repo2), WithInstaller(&deploytest.Recorder{}), WithDownloader(&deploytest.Recorder{}), WithRestorer(&deploytest.Recorder{}))

	stage, ok := second.Next()
	require.True(t, ok)
	require.Equal(t, StageCheck, stage.Kind)
	stage.Check.Perform()
	assert.True(t, second.Context().Checked)
	assert.Nil(t, second.Context().Polylock)
}

// Retry-on-failure: a stage obtained but not performed is re-yielded.
func TestEngine_RetryOnFailure(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{}
	inst := writeInstance(t, dir, md)
	engine := NewEngine(inst, func(string) (repository.Repository, bool) { return nil, false })

	stage1, ok := engine.Next()
	require.True(t, ok)
	assert.Equal(t, StageCheck, stage1.Kind)

	// Drop stage1 without performing it.
	stage2, ok := engine.Next()
	require.True(t, ok)
	assert.Equal(t, StageCheck, stage2.Kind)
	assert.False(t, engine.Context().Checked)
}

// An exhausted resolve stage publishes Resolved even when it found zero
// packages, so HasResolved distinguishes it from a resolve that never ran.
func TestEngine_ResolvedPublishedEvenWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	md := profile.Metadata{}
	inst := writeInstance(t, dir, md)
	engine := NewEngine(inst, func(string) (repository.Repository, bool) { return nil, false })

	stage, ok := engine.Next()
	require.True(t, ok)
	stage.Check.Perform()

	stage, ok = engine.Next()
	require.True(t, ok)
	require.Equal(t, StageResolve, stage.Kind)
	_, more := stage.Resolve.Next()
	assert.False(t, more, "no tasks means the resolve engine is immediately exhausted")

	assert.True(t, engine.Context().HasResolved())
	assert.Empty(t, engine.Context().Resolved)
}
