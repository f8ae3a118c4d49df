// Package purl implements the package URL codec: parsing and formatting of
// `pkg:<repo>/<project>@<version>` identifiers used throughout the deploy
// engine to name resolvable tasks.
//
// No third-party purl library is reached for here: the examples retrieved
// for this spec never import one (the closest analog, package-url/packageurl-go,
// appears nowhere in the pack), and the grammar this codec needs is a
// single fixed three-field pattern, not the general purl spec (qualifiers,
// subpaths, namespaces) those libraries target. See DESIGN.md.
package purl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a string does not match the
// `pkg:<repo>/<project>@<version>` grammar.
var ErrInvalidFormat = errors.New("purl: invalid format")

const scheme = "pkg:"

// LatestVersion is the literal version token meaning "latest matching the
// query context".
const LatestVersion = "*"

// Purl is the parsed triple (repo_label, project_id, version_id).
type Purl struct {
	Repo    string
	Project string
	Version string
}

// New builds a Purl from its parts without validating them against a
// specific repository label set; validation of the label happens at
// resolve time (see pkg/resolve).
func New(repo, project, version string) Purl {
	return Purl{Repo: repo, Project: project, Version: version}
}

// Parse decodes s into a Purl. The version segment (including the `@`) is
// optional at this layer; an empty Version is only rejected at the
// resolver boundary, per spec.
func Parse(s string) (Purl, error) {
	if !strings.HasPrefix(s, scheme) {
		return Purl{}, fmt.Errorf("%w: missing %q prefix", ErrInvalidFormat, scheme)
	}
	rest := s[len(scheme):]

	repo, rest, ok := strings.Cut(rest, "/")
	if !ok || repo == "" {
		return Purl{}, fmt.Errorf("%w: missing repository label", ErrInvalidFormat)
	}

	project := rest
	version := ""
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		project = rest[:at]
		version = rest[at+1:]
	}
	if project == "" {
		return Purl{}, fmt.Errorf("%w: missing project id", ErrInvalidFormat)
	}

	return Purl{Repo: repo, Project: project, Version: version}, nil
}

// String formats the Purl back into its wire grammar. Round-trip law:
// Parse(p.String()) == p for every well-formed Purl.
func (p Purl) String() string {
	var sb strings.Builder
	sb.WriteString(scheme)
	sb.WriteString(p.Repo)
	sb.WriteByte('/')
	sb.WriteString(p.Project)
	if p.Version != "" {
		sb.WriteByte('@')
		sb.WriteString(p.Version)
	}
	return sb.String()
}

// IsLatest reports whether the Purl's version segment requests "latest in
// context" resolution.
func (p Purl) IsLatest() bool {
	return p.Version == LatestVersion
}
