package deploy

import (
	"context"

	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/polylock"
	"github.com/gravitylab/trident/pkg/repository"
)

// Installer performs whatever local component installation (game
// runtime, mod loader) the resolved closure requires. Specified only at
// the contract level (spec §1/§9); a nil Installer makes the Install
// stage a no-op that still materializes and persists the polylock.
type Installer interface {
	Install(ctx context.Context, inst *instance.Instance, resolved []repository.Package) error
}

// Downloader fetches every file named by a polylock into the shared
// content-addressed store (<root>/storage/) via the download cache
// (<root>/cache/). Specified only at the contract level.
type Downloader interface {
	Download(ctx context.Context, data *polylock.Data) error
}

// Restorer materializes the on-disk instance state (symlinks/copies from
// the content store into the instance home) from a polylock. Specified
// only at the contract level.
type Restorer interface {
	Restore(ctx context.Context, inst *instance.Instance, data *polylock.Data) error
}
