// Package profile defines the declarative instance profile: the
// user-authored manifest of desired modded game content that the deploy
// engine resolves into a concrete instance.
package profile

import (
	"net/url"
	"time"
)

// Component ids relevant to the resolver. This set is closed: the deploy
// engine only recognizes these when picking a mod loader for a repository
// query context.
const (
	ComponentMinecraft     = "net.minecraft"
	ComponentForge         = "net.minecraftforge"
	ComponentNeoForge      = "net.neoforged"
	ComponentFabric        = "net.fabricmc.fabric-loader"
	ComponentQuilt         = "org.quiltmc.quilt-loader"
	ComponentBuiltinStore  = "builtin.trident.storage"
)

// Loaders is the closed set of component ids recognized as mod loaders,
// in the order the deploy engine checks them when choosing the
// RepositoryContext's ModLoader (first match wins).
var Loaders = [...]string{ComponentFabric, ComponentQuilt, ComponentForge, ComponentNeoForge}

// Profile is the on-disk manifest for one instance.
type Profile struct {
	Name      string          `yaml:"name"`
	Author    string          `yaml:"author"`
	Summary   string          `yaml:"summary"`
	Thumbnail *URL            `yaml:"thumbnail,omitempty"`
	Reference string          `yaml:"reference,omitempty"`
	Metadata  Metadata        `yaml:"metadata"`
	Timeline  []TimelinePoint `yaml:"timeline,omitempty"`
}

// URL wraps url.URL with YAML (de)serialization as a plain string, since
// url.URL's own fields would otherwise round-trip as a nested mapping.
type URL struct {
	url.URL
}

// ParseURL parses s into a profile.URL.
func ParseURL(s string) (*URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return &URL{URL: *u}, nil
}

// MarshalYAML implements yaml.Marshaler.
func (u URL) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *URL) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}
	u.URL = *parsed
	return nil
}

// Metadata is the resolution-relevant subset of a Profile: everything that
// feeds the resolve engine and therefore everything whose change must be
// able to invalidate a prior polylock. See pkg/digest.
type Metadata struct {
	Components []Component `yaml:"components"`
	Layers     []Layer     `yaml:"attachments"`
}

// Component is a named, versioned runtime element: the game itself, a mod
// loader, or a builtin service.
type Component struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// NewComponent builds a Component from an id and version string.
func NewComponent(id, version string) Component {
	return Component{ID: id, Version: version}
}

// Layer is an ordered, toggleable group of task purls contributed to
// resolution. A disabled layer still participates in the metadata digest
// (so re-enabling it invalidates the lock) but contributes no tasks.
type Layer struct {
	From    *string  `yaml:"from,omitempty"`
	Summary string   `yaml:"summary"`
	Enabled bool     `yaml:"enabled"`
	Content []string `yaml:"content"`
}

// NewLayer creates a layer with the given summary and provenance, enabled
// by default.
func NewLayer(summary string, from *string) Layer {
	return Layer{Summary: summary, From: from, Enabled: true}
}

// TimelinePoint records one historical action taken against an instance.
type TimelinePoint struct {
	Time   time.Time    `yaml:"time"`
	Action Action       `yaml:"action"`
	Result ActionResult `yaml:"result"`
}

// Action identifies what a timeline point recorded.
type Action struct {
	Kind    ActionKind `yaml:"kind"`
	Comment string     `yaml:"comment,omitempty"`
}

// ActionKind enumerates the supported timeline actions.
type ActionKind string

const (
	ActionCreate  ActionKind = "create"
	ActionRestore ActionKind = "restore"
	ActionPlay    ActionKind = "play"
	ActionUpdate  ActionKind = "update"
)

// ActionResult records the outcome of an Action.
type ActionResult struct {
	Kind   ActionResultKind `yaml:"kind"`
	Moment *time.Time       `yaml:"moment,omitempty"`
}

// ActionResultKind enumerates the supported timeline outcomes.
type ActionResultKind string

const (
	ActionResultDone   ActionResultKind = "done"
	ActionResultFinish ActionResultKind = "finish"
	ActionResultFail   ActionResultKind = "fail"
)

// Tasks flattens the purls of every enabled layer's content, in layer
// order then content order, the way the resolve stage seeds its first
// wave.
func (m Metadata) Tasks() []string {
	var tasks []string
	for _, l := range m.Layers {
		if !l.Enabled {
			continue
		}
		tasks = append(tasks, l.Content...)
	}
	return tasks
}

// Loader returns the id of the first recognized mod loader component
// declared on the profile, if any.
func (m Metadata) Loader() (string, bool) {
	declared := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		declared[c.ID] = true
	}
	for _, id := range Loaders {
		if declared[id] {
			return id, true
		}
	}
	return "", false
}

// GameVersion returns the declared version of the net.minecraft component,
// if present.
func (m Metadata) GameVersion() (string, bool) {
	for _, c := range m.Components {
		if c.ID == ComponentMinecraft {
			return c.Version, true
		}
	}
	return "", false
}
