// Package repository defines the abstract capability the deploy engine
// uses to resolve a package URL against a remote (or local) package
// repository, plus the resolver's output type.
package repository

// Kind enumerates the downloadable content kinds a Package can represent.
type Kind string

const (
	KindModPack      Kind = "modpack"
	KindMod          Kind = "mod"
	KindWorld        Kind = "world"
	KindDataPack     Kind = "datapack"
	KindResourcePack Kind = "resourcepack"
	KindShaderPack   Kind = "shaderpack"
)

// Package is one resolved, concrete, downloadable version of a project —
// the resolve engine's output and a polylock entry.
type Package struct {
	ProjectID     string         `json:"project_id" yaml:"project_id"`
	ProjectName   string         `json:"project_name" yaml:"project_name"`
	VersionID     string         `json:"version_id" yaml:"version_id"`
	VersionName   string         `json:"version_name" yaml:"version_name"`
	Author        string         `json:"author" yaml:"author"`
	Summary       string         `json:"summary" yaml:"summary"`
	Kind          Kind           `json:"kind" yaml:"kind"`
	Filename      string         `json:"filename" yaml:"filename"`
	Download      string         `json:"download" yaml:"download"`
	Hash          string         `json:"hash,omitempty" yaml:"hash,omitempty"`
	Dependencies  []Dependency   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Requirements  []Requirement  `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// Dependency names another package this Package relies on.
type Dependency struct {
	Purl     string `json:"purl"`
	Required bool   `json:"required"`
}

// RequirementKind distinguishes the two shapes a Requirement can take.
type RequirementKind string

const (
	RequirementVersioned  RequirementKind = "versioned"
	RequirementCompatible RequirementKind = "compatible"
)

// Requirement constrains a package to specific components or tags.
// Versioned requirements name a component id and the version ranges it
// must satisfy; Compatible requirements name a set of loader ids or tags
// the package declares support for. Requirements are carried as data only:
// no repository or engine in this module evaluates them.
type Requirement struct {
	Kind            RequirementKind `json:"kind"`
	ComponentID     string          `json:"component_id,omitempty"`
	VersionRanges   []string        `json:"version_ranges,omitempty"`
	CompatibleWith  []string        `json:"compatible_with,omitempty"`
}

// Project is the search-result shape for Repository.Search.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Author    string `json:"author"`
	Summary   string `json:"summary"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
