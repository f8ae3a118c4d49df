// Package config loads tridentctl's own settings: the handful of knobs
// that aren't part of a profile (where the trident root lives, how deep
// resolution may recurse, whether to force a rebuild by default).
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gravitylab/trident/pkg/verbose"
)

// DefaultMaxResolveDepth has the same value as deploy's
// defaultMaxResolveDepth. The two are separate constants: changing one
// does not change the other.
const DefaultMaxResolveDepth = 5

// Config is tridentctl's own settings, independent of any one profile.
type Config struct {
	Root            string `yaml:"root"`
	MaxResolveDepth int    `yaml:"maxResolveDepth"`
	Force           bool   `yaml:"force"`
}

// defaultConfig returns the built-in configuration used when no
// .trident.yaml exists.
func defaultConfig(root string) *Config {
	return &Config{Root: root, MaxResolveDepth: DefaultMaxResolveDepth}
}

// Load reads <root>/.trident.yaml if present and merges it over the
// built-in defaults. A missing file is not an error — it just means the
// defaults apply.
func Load(root string) (*Config, error) {
	cfg := defaultConfig(root)

	path := filepath.Join(root, ".trident.yaml")
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			verbose.Debugf("config: no %s, using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	var fromFile Config
	if err := yaml.Unmarshal(content, &fromFile); err != nil {
		return nil, err
	}
	verbose.Infof("config: loaded %s", path)

	merged := Merge(cfg, &fromFile)
	merged.Root = root
	return merged, nil
}

// Merge layers custom over base: any field custom sets to its non-zero
// value overrides base's, matching the teacher's base/custom override
// convention for config inheritance (pkg/config.mergeConfigs).
func Merge(base, custom *Config) *Config {
	if custom == nil {
		return base
	}
	merged := *base
	if custom.MaxResolveDepth > 0 {
		merged.MaxResolveDepth = custom.MaxResolveDepth
	}
	if custom.Force {
		merged.Force = true
	}
	if custom.Root != "" {
		merged.Root = custom.Root
	}
	return &merged
}

// ApplyFlags layers CLI flag overrides over a loaded Config, the same
// merge rule Load uses for the file layer. A flag's zero value never
// overrides: --max-resolve-depth=0 is "unset", not "zero depth".
func ApplyFlags(cfg *Config, maxResolveDepth int, force bool) *Config {
	return Merge(cfg, &Config{MaxResolveDepth: maxResolveDepth, Force: force})
}
