// Package instance represents an on-disk, runnable materialization of a
// profile, rooted at <root>/instances/<key>/, and its paired profile file.
package instance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gravitylab/trident/pkg/profile"
)

// Error kinds that make a deploy fatal before the deploy engine is ever
// produced (spec §7).
var (
	ErrFileNotFound    = errors.New("instance: file not found")
	ErrFileSystemError = errors.New("instance: file system error")
	ErrInvalidProfile  = errors.New("instance: invalid profile")
)

// Instance pairs a loaded Profile with the on-disk paths it was loaded
// from and the home directory its polylock and downloaded content live
// under.
type Instance struct {
	profile     *profile.Profile
	profilePath string
	homePath    string
}

// Load reads and parses the profile file at path, deriving the instance
// home directory by stripping its extension (<key>.yaml -> <key>/),
// mirroring the original's PathBuf::with_extension("") convention.
func Load(path string) (*Instance, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, ErrFileSystemError
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrFileSystemError
	}

	p, err := profile.FromYAML(content)
	if err != nil {
		return nil, ErrInvalidProfile
	}

	ext := filepath.Ext(path)
	home := strings.TrimSuffix(path, ext)

	return &Instance{
		profile:     p,
		profilePath: path,
		homePath:    home,
	}, nil
}

// Profile returns the instance's loaded profile.
func (i *Instance) Profile() *profile.Profile { return i.profile }

// ProfilePath returns the path the profile was loaded from.
func (i *Instance) ProfilePath() string { return i.profilePath }

// Home returns the instance's home directory.
func (i *Instance) Home() string { return i.homePath }

// EnsureHome creates the instance's home directory if it does not exist.
func (i *Instance) EnsureHome() error {
	if err := os.MkdirAll(i.homePath, 0o755); err != nil {
		return ErrFileSystemError
	}
	return nil
}
