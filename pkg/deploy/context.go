package deploy

import (
	"github.com/google/uuid"

	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/polylock"
	"github.com/gravitylab/trident/pkg/repository"
)

// Context is the deploy engine's shared, single-writer state (spec §3).
// It is exclusively owned by the Engine; a Stage borrows it for the
// duration of one Perform call and releases it before the next Engine.Next
// call.
// The boolean flags and Option-shaped slots never transition back to
// their empty value within one Engine's lifetime (state monotonicity,
// spec §8).
type Context struct {
	RunID    uuid.UUID
	Instance *instance.Instance

	polylockStore polylock.Store

	Polylock  *polylock.Data
	Resolved  []repository.Package
	resolvedSet bool
	Installed bool

	Checked    bool
	Downloaded bool
	Restored   bool
}

func newContext(inst *instance.Instance) *Context {
	return &Context{
		RunID:         uuid.New(),
		Instance:      inst,
		polylockStore: polylock.New(inst.Home()),
	}
}

// HasResolved reports whether the Resolve stage has published its result,
// distinguishing a not-yet-run resolve from one that finished with zero
// packages.
func (c *Context) HasResolved() bool { return c.resolvedSet }

func (c *Context) setResolved(packages []repository.Package) {
	c.Resolved = packages
	c.resolvedSet = true
}
