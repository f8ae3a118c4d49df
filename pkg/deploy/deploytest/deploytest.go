// Package deploytest provides no-op Installer/Downloader/Restorer test
// doubles so the deploy engine's own tests can drive every stage without
// touching the filesystem or network, per spec §9 ("specified only at the
// contract level").
package deploytest

import (
	"context"

	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/polylock"
	"github.com/gravitylab/trident/pkg/repository"
)

// Recorder is a no-op Installer/Downloader/Restorer that records every
// call it receives, for asserting stage sequencing in tests.
type Recorder struct {
	Installed []repository.Package
	Downloaded *polylock.Data
	Restored   *polylock.Data
	FailNext   error
}

func (r *Recorder) Install(_ context.Context, _ *instance.Instance, resolved []repository.Package) error {
	if r.FailNext != nil {
		err := r.FailNext
		r.FailNext = nil
		return err
	}
	r.Installed = resolved
	return nil
}

func (r *Recorder) Download(_ context.Context, data *polylock.Data) error {
	if r.FailNext != nil {
		err := r.FailNext
		r.FailNext = nil
		return err
	}
	r.Downloaded = data
	return nil
}

func (r *Recorder) Restore(_ context.Context, _ *instance.Instance, data *polylock.Data) error {
	if r.FailNext != nil {
		err := r.FailNext
		r.FailNext = nil
		return err
	}
	r.Restored = data
	return nil
}
