// Package machine roots the filesystem layout described in spec §6: the
// instances directory, the content-addressed storage directory, and the
// download cache directory, plus the operations to load and create
// instance profiles within them.
package machine

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gravitylab/trident/pkg/profile"
)

const (
	instancesDir = "instances"
	storageDir   = "storage"
	cacheDir     = "cache"
)

var (
	// ErrUnreachable means the named instance profile could not be found,
	// read, or parsed.
	ErrUnreachable = errors.New("machine: not found or inaccessible")
	// ErrConflict means a profile already exists at the derived path.
	ErrConflict = errors.New("machine: object already exists with that key")
	// ErrFileSystemError wraps an underlying filesystem failure.
	ErrFileSystemError = errors.New("machine: file system error")
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeKey mirrors the teacher's defensive-filename convention: collapse
// anything that is not a safe filename character into a single dash, so a
// profile name can never escape the instances directory.
func sanitizeKey(name string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "-")
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		sanitized = "instance"
	}
	return sanitized
}

// Machine roots all instance and content storage under a single
// directory, matching the filesystem layout in spec §6.
type Machine struct {
	root string
}

// New builds a Machine rooted at root.
func New(root string) *Machine {
	return &Machine{root: root}
}

// Root returns the machine's root directory.
func (m *Machine) Root() string { return m.root }

// InstancesDir, StorageDir, and CacheDir return the machine's well-known
// subdirectories.
func (m *Machine) InstancesDir() string { return filepath.Join(m.root, instancesDir) }
func (m *Machine) StorageDir() string   { return filepath.Join(m.root, storageDir) }
func (m *Machine) CacheDir() string     { return filepath.Join(m.root, cacheDir) }

// ProfilePath returns the on-disk path of the profile file for key.
func (m *Machine) ProfilePath(key string) string {
	return filepath.Join(m.InstancesDir(), key+".yaml")
}

// HomePath returns the instance home directory for key.
func (m *Machine) HomePath(key string) string {
	return filepath.Join(m.InstancesDir(), key)
}

// LoadProfile reads and parses the profile file named key (without
// extension) from the instances directory.
func (m *Machine) LoadProfile(key string) (*profile.Profile, error) {
	content, err := os.ReadFile(m.ProfilePath(key))
	if err != nil {
		return nil, ErrUnreachable
	}
	p, err := profile.FromYAML(content)
	if err != nil {
		return nil, ErrUnreachable
	}
	return p, nil
}

// ProfileOption customizes a profile created by CreateProfile.
type ProfileOption func(*profile.Profile)

// WithAuthor sets the new profile's author.
func WithAuthor(author string) ProfileOption {
	return func(p *profile.Profile) { p.Author = author }
}

// WithSummary sets the new profile's summary.
func WithSummary(summary string) ProfileOption {
	return func(p *profile.Profile) { p.Summary = summary }
}

// WithGameVersion declares the net.minecraft component at the given
// version on the new profile.
func WithGameVersion(version string) ProfileOption {
	return func(p *profile.Profile) {
		p.Metadata.Components = append(p.Metadata.Components, profile.NewComponent(profile.ComponentMinecraft, version))
	}
}

// CreateProfile writes a new profile named name to the instances
// directory, applying opts, and fails with ErrConflict if one already
// exists at the derived path.
func (m *Machine) CreateProfile(name string, opts ...ProfileOption) (*profile.Profile, error) {
	key := sanitizeKey(name)
	path := m.ProfilePath(key)

	if _, err := os.Stat(path); err == nil {
		return nil, ErrConflict
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ErrFileSystemError
	}

	p := &profile.Profile{Name: name}
	for _, opt := range opts {
		opt(p)
	}

	encoded, err := profile.ToYAML(p)
	if err != nil {
		return nil, ErrFileSystemError
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return nil, ErrFileSystemError
	}
	return p, nil
}
