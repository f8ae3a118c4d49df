// Package memory implements an in-memory, fixture-backed repository.Repository.
// It is the only repository the deploy core needs to exercise end to end:
// real HTTP-backed backends (CurseForge, Modrinth) are out of scope per the
// spec, which defines repositories only as an abstract capability.
//
// Fixtures are loaded from YAML (the teacher's config format,
// gopkg.in/yaml.v3) and double as both a usable local repository
// implementation (e.g. for the builtin.trident.storage pseudo-repository)
// and deterministic test data, the same way the teacher's pkg/testdata
// fixtures serve both roles.
package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	semverx "golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/gravitylab/trident/pkg/repository"
)

// Fixture is the YAML-decodable shape of a memory repository's contents.
type Fixture struct {
	Label    string             `yaml:"label"`
	Projects []FixtureProject   `yaml:"projects"`
}

// FixtureProject groups every known version of one project.
type FixtureProject struct {
	ID       string            `yaml:"id"`
	Versions []FixtureVersion  `yaml:"versions"`
}

// FixtureVersion is one resolvable version of a project, plus the
// context-filtering metadata (game version range, loader compatibility)
// the repository uses to pick "latest in context".
type FixtureVersion struct {
	VersionID       string                 `yaml:"version_id"`
	ReleaseDate     time.Time              `yaml:"release_date"`
	GameVersionSpec string                 `yaml:"game_version_spec,omitempty"`
	Loaders         []string               `yaml:"loaders,omitempty"`
	Package         repository.Package     `yaml:"package"`
}

// Repository is an in-memory repository.Repository backed by a Fixture.
type Repository struct {
	label    repository.Label
	projects map[string]FixtureProject
}

// New builds a Repository directly from a Fixture value.
func New(label repository.Label, fixture Fixture) *Repository {
	projects := make(map[string]FixtureProject, len(fixture.Projects))
	for _, p := range fixture.Projects {
		projects[p.ID] = p
	}
	return &Repository{label: label, projects: projects}
}

// NewFromYAML decodes a Fixture from YAML and builds a Repository from it.
func NewFromYAML(label repository.Label, data []byte) (*Repository, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, err
	}
	return New(label, fixture), nil
}

func (r *Repository) Label() repository.Label { return r.label }

// Resolve implements repository.Repository.
func (r *Repository) Resolve(_ context.Context, projectID, versionID string, qc repository.QueryContext) (repository.Package, error) {
	project, ok := r.projects[projectID]
	if !ok {
		return repository.Package{}, repository.NewError(repository.KindNotFound, string(r.label)+"/"+projectID, nil)
	}

	if versionID == "" {
		return repository.Package{}, repository.NewError(repository.KindInvalidFormat, string(r.label)+"/"+projectID, nil)
	}

	if versionID != "*" {
		for _, v := range project.Versions {
			if v.VersionID == versionID {
				return v.Package, nil
			}
		}
		return repository.Package{}, repository.NewError(repository.KindNotFound, string(r.label)+"/"+projectID+"@"+versionID, nil)
	}

	candidates := make([]FixtureVersion, 0, len(project.Versions))
	for _, v := range project.Versions {
		if matchesContext(v, qc) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return repository.Package{}, repository.NewError(repository.KindNotFound, string(r.label)+"/"+projectID+"@*", nil)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return versionLess(candidates[j], candidates[i]) // descending
	})
	return candidates[0].Package, nil
}

// Search implements repository.Repository. It is not exercised by the
// deploy core; defined for interface completeness per spec §4.2.
func (r *Repository) Search(_ context.Context, keyword string, _ repository.QueryContext) ([]repository.Project, error) {
	var out []repository.Project
	for _, p := range r.projects {
		if keyword == "" || containsFold(p.ID, keyword) {
			if len(p.Versions) == 0 {
				continue
			}
			pkg := p.Versions[0].Package
			out = append(out, repository.Project{
				ID:      p.ID,
				Name:    pkg.ProjectName,
				Author:  pkg.Author,
				Summary: pkg.Summary,
			})
		}
	}
	return out, nil
}

func matchesContext(v FixtureVersion, qc repository.QueryContext) bool {
	if qc.GameVersion != "" && v.GameVersionSpec != "" {
		constraint, err := semver.NewConstraint(v.GameVersionSpec)
		if err == nil {
			gv, err := semver.NewVersion(qc.GameVersion)
			if err == nil && !constraint.Check(gv) {
				return false
			}
		}
	}
	if qc.ModLoader != "" && len(v.Loaders) > 0 {
		found := false
		for _, l := range v.Loaders {
			if l == qc.ModLoader {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if qc.Kind != "" && v.Package.Kind != qc.Kind {
		return false
	}
	return true
}

// versionLess orders two candidate versions ascending: first by
// canonicalized semver when both versions are well-formed, falling back
// to declared release date (spec §4.2's tie-break).
func versionLess(a, b FixtureVersion) bool {
	va, aok := canonicalSemver(a.VersionID)
	vb, bok := canonicalSemver(b.VersionID)
	if aok && bok {
		if c := semverx.Compare(va, vb); c != 0 {
			return c < 0
		}
		return a.ReleaseDate.Before(b.ReleaseDate)
	}
	return a.ReleaseDate.Before(b.ReleaseDate)
}

func canonicalSemver(v string) (string, bool) {
	withV := v
	if len(withV) == 0 || withV[0] != 'v' {
		withV = "v" + withV
	}
	if !semverx.IsValid(withV) {
		return "", false
	}
	return withV, true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
