package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitylab/trident/pkg/repository"
	"github.com/gravitylab/trident/pkg/repository/memory"
	"github.com/gravitylab/trident/pkg/resolve"
)

// loadRepositories builds a resolve.Lookup from every *.yaml fixture
// under <root>/repositories/, keyed by filename (without extension) as
// the repository label. A root with no repositories directory yields an
// always-miss lookup rather than an error, so `tridentctl deploy` still
// runs against an empty or partially-configured root: every Resolve task
// then fails with NotFound (unknown repository label), which the deploy
// command logs at debug level and skips.
func loadRepositories(root string) (resolve.Lookup, error) {
	dir := filepath.Join(root, "repositories")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return func(string) (repository.Repository, bool) { return nil, false }, nil
		}
		return nil, err
	}

	repos := make(map[string]*memory.Repository, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		label := strings.TrimSuffix(entry.Name(), ".yaml")
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		repo, err := memory.NewFromYAML(repository.Label(label), content)
		if err != nil {
			return nil, err
		}
		repos[label] = repo
	}

	return func(label string) (repository.Repository, bool) {
		repo, ok := repos[label]
		return repo, ok
	}, nil
}
