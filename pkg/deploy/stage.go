// Package deploy implements the deploy engine (spec §4.6/§4.7): a
// resumable, staged state machine driving Check -> Resolve -> Install ->
// Download -> Restore over a shared Context, together with the stage
// handles the caller performs to advance it.
package deploy

import (
	"context"

	"github.com/gravitylab/trident/pkg/digest"
	"github.com/gravitylab/trident/pkg/polylock"
	"github.com/gravitylab/trident/pkg/repository"
	"github.com/gravitylab/trident/pkg/resolve"
	"github.com/gravitylab/trident/pkg/verbose"
)

// StageKind identifies which of the five deploy stages a Stage value
// carries.
type StageKind int

const (
	StageCheck StageKind = iota
	StageResolve
	StageInstall
	StageDownload
	StageRestore
)

func (k StageKind) String() string {
	switch k {
	case StageCheck:
		return "Check"
	case StageResolve:
		return "Resolve"
	case StageInstall:
		return "Install"
	case StageDownload:
		return "Download"
	case StageRestore:
		return "Restore"
	default:
		return "Unknown"
	}
}

// Stage is the tagged union of stage handles the Engine yields. Exactly
// one of the pointer fields matching Kind is non-nil.
type Stage struct {
	Kind     StageKind
	Check    *CheckHandle
	Resolve  *ResolveStage
	Install  *InstallHandle
	Download *DownloadHandle
	Restore  *RestoreHandle
}

// CheckHandle attempts to load and validate a prior polylock against the
// instance's current metadata digest.
type CheckHandle struct {
	ctx *Context
}

// Perform is infallible from the engine's perspective: any I/O or parse
// failure downgrades to "no valid lock" rather than propagating an error,
// per spec §4.7. It always marks the stage done.
func (h *CheckHandle) Perform() {
	d := digest.Digest(h.ctx.Instance.Profile().Metadata)
	if data, ok := h.ctx.polylockStore.Read(d); ok {
		h.ctx.Polylock = data
		verbose.Debugf("%s check: valid lock found (digest %s)", h.ctx.RunID, d)
	} else {
		verbose.Debugf("%s check: no valid lock (digest %s)", h.ctx.RunID, d)
	}
	h.ctx.Checked = true
}

// ResolveStage wraps a resolve.Engine, producing resolve.Handles to the
// caller and publishing the finished closure into the deploy Context at
// most once. Next publishes when the engine is exhausted; a caller that
// abandons the stage mid-wave or after an error publishes by calling
// Close. A stage abandoned without Close is not published.
type ResolveStage struct {
	ctx      *Context
	engine   *resolve.Engine
	published bool
}

func newResolveStage(ctx *Context, lookup resolve.Lookup, qc repository.QueryContext, maxDepth int) *ResolveStage {
	tasks := ctx.Instance.Profile().Metadata.Tasks()
	verbose.Debugf("%s resolve: seeding %d task(s), max depth %d", ctx.RunID, len(tasks), maxDepth)
	return &ResolveStage{
		ctx:    ctx,
		engine: resolve.NewEngine(tasks, lookup, qc, maxDepth),
	}
}

// Next yields the next resolve handle, or (nil, false) once the
// underlying engine is exhausted — which also publishes the result.
func (s *ResolveStage) Next() (*resolve.Handle, bool) {
	h, ok := s.engine.Next()
	if !ok {
		s.Close()
		return nil, false
	}
	verbose.Tracef("%s resolve: dispatching %s", s.ctx.RunID, h.Task())
	return h, true
}

// Close publishes the resolve stage's finished packages into the deploy
// Context. Safe to call multiple times or after Next already published;
// only the first call has effect (publish-on-drop, at-most-once).
func (s *ResolveStage) Close() {
	if s.published {
		return
	}
	s.published = true
	finished := s.engine.Finished()
	verbose.Debugf("%s resolve: published %d resolved package(s)", s.ctx.RunID, len(finished))
	s.ctx.setResolved(finished)
}

// InstallHandle materializes the polylock from the resolved closure and
// whatever component installation the injected Installer performs, then
// persists it via the polylock store.
type InstallHandle struct {
	ctx       *Context
	installer Installer
}

// Perform runs the injected Installer and, on success, builds and
// persists the polylock.
func (h *InstallHandle) Perform(ctx context.Context) error {
	if err := h.ctx.Instance.EnsureHome(); err != nil {
		return err
	}

	if h.installer != nil {
		if err := h.installer.Install(ctx, h.ctx.Instance, h.ctx.Resolved); err != nil {
			return err
		}
	}

	installedIDs := make([]string, 0, len(h.ctx.Instance.Profile().Metadata.Components))
	for _, c := range h.ctx.Instance.Profile().Metadata.Components {
		installedIDs = append(installedIDs, c.ID)
	}

	data := &polylock.Data{
		Packages:            h.ctx.Resolved,
		InstalledComponents: installedIDs,
	}
	d := digest.Digest(h.ctx.Instance.Profile().Metadata)
	if err := h.ctx.polylockStore.Write(data, d); err != nil {
		return err
	}

	h.ctx.Installed = true
	h.ctx.Polylock = data
	verbose.Debugf("%s install: wrote polylock with %d package(s)", h.ctx.RunID, len(data.Packages))
	return nil
}

// DownloadHandle fetches every file named by the polylock via the
// injected Downloader. Contract only — the real download engine is an
// external collaborator (spec §1/§9).
type DownloadHandle struct {
	ctx        *Context
	downloader Downloader
}

func (h *DownloadHandle) Perform(ctx context.Context) error {
	if h.downloader != nil {
		if err := h.downloader.Download(ctx, h.ctx.Polylock); err != nil {
			return err
		}
	}
	h.ctx.Downloaded = true
	verbose.Debugf("%s download: complete", h.ctx.RunID)
	return nil
}

// RestoreHandle materializes the on-disk instance state from the
// downloaded content via the injected Restorer. Contract only (spec §9).
type RestoreHandle struct {
	ctx      *Context
	restorer Restorer
}

func (h *RestoreHandle) Perform(ctx context.Context) error {
	if h.restorer != nil {
		if err := h.restorer.Restore(ctx, h.ctx.Instance, h.ctx.Polylock); err != nil {
			return err
		}
	}
	h.ctx.Restored = true
	verbose.Debugf("%s restore: complete", h.ctx.RunID)
	return nil
}
