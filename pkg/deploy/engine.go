package deploy

import (
	"github.com/gravitylab/trident/pkg/instance"
	"github.com/gravitylab/trident/pkg/repository"
	"github.com/gravitylab/trident/pkg/resolve"
	"github.com/gravitylab/trident/pkg/verbose"
)

const defaultMaxResolveDepth = 5

// Engine is the deploy state machine sequencer (spec §4.6). It is a pull
// producer: each call to Next yields at most one Stage; the caller
// performs it, which mutates the shared Context; the next Next call
// derives the next stage from the Context's flags. A stage obtained but
// not successfully performed is re-yielded verbatim on the next call
// (retry-on-failure, spec §8).
type Engine struct {
	ctx             *Context
	lookup          resolve.Lookup
	maxResolveDepth int
	forced          bool

	installer  Installer
	downloader Downloader
	restorer   Restorer

	activeResolve *ResolveStage
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithForce bypasses the Check stage entirely, pretending the instance
// was already checked with no valid lock found, so Resolve always runs
// and any existing lock is overwritten at Install.
func WithForce(force bool) Option {
	return func(e *Engine) { e.forced = force }
}

// WithMaxResolveDepth bounds the resolve engine's wave count (spec §4.5's
// D). The default is 5.
func WithMaxResolveDepth(d int) Option {
	return func(e *Engine) {
		if d > 0 {
			e.maxResolveDepth = d
		}
	}
}

// WithInstaller, WithDownloader, and WithRestorer inject the external
// collaborators for the Install/Download/Restore stages. Omitting one
// makes its stage a no-op beyond the contractual bookkeeping the deploy
// engine itself performs (e.g. Install still materializes the polylock
// even with no Installer).
func WithInstaller(i Installer) Option   { return func(e *Engine) { e.installer = i } }
func WithDownloader(d Downloader) Option { return func(e *Engine) { e.downloader = d } }
func WithRestorer(r Restorer) Option     { return func(e *Engine) { e.restorer = r } }

// NewEngine builds a deploy Engine for inst, dispatching resolve tasks
// through lookup.
func NewEngine(inst *instance.Instance, lookup resolve.Lookup, opts ...Option) *Engine {
	e := &Engine{
		ctx:             newContext(inst),
		lookup:          lookup,
		maxResolveDepth: defaultMaxResolveDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	verbose.Infof("%s deploy: engine created for %s (forced=%v, max depth=%d)", e.ctx.RunID, inst.ProfilePath(), e.forced, e.maxResolveDepth)
	return e
}

// Context returns the engine's shared deploy context, for inspection
// between Next calls.
func (e *Engine) Context() *Context { return e.ctx }

// Next derives and yields the next stage from the context's flags, or
// (nil, false) once the engine has reached its terminal condition
// (Restored == true).
func (e *Engine) Next() (*Stage, bool) {
	ctx := e.ctx

	if e.forced && !ctx.Checked {
		ctx.Checked = true
		e.forced = false
		verbose.Debugf("%s deploy: forced rebuild, bypassing check", ctx.RunID)
	}

	switch {
	case !ctx.Checked:
		verbose.Infof("%s deploy: stage Check", ctx.RunID)
		return &Stage{Kind: StageCheck, Check: &CheckHandle{ctx: ctx}}, true

	case ctx.Polylock == nil && !ctx.HasResolved():
		if e.activeResolve == nil {
			e.activeResolve = newResolveStage(ctx, e.lookup, e.queryContext(), e.maxResolveDepth)
		}
		verbose.Infof("%s deploy: stage Resolve", ctx.RunID)
		return &Stage{Kind: StageResolve, Resolve: e.activeResolve}, true

	case ctx.Polylock == nil && ctx.HasResolved() && !ctx.Installed:
		verbose.Infof("%s deploy: stage Install", ctx.RunID)
		return &Stage{Kind: StageInstall, Install: &InstallHandle{ctx: ctx, installer: e.installer}}, true

	case ctx.Polylock != nil && !ctx.Downloaded:
		verbose.Infof("%s deploy: stage Download", ctx.RunID)
		return &Stage{Kind: StageDownload, Download: &DownloadHandle{ctx: ctx, downloader: e.downloader}}, true

	case ctx.Downloaded && !ctx.Restored:
		verbose.Infof("%s deploy: stage Restore", ctx.RunID)
		return &Stage{Kind: StageRestore, Restore: &RestoreHandle{ctx: ctx, restorer: e.restorer}}, true

	default:
		verbose.Infof("%s deploy: terminal", ctx.RunID)
		return nil, false
	}
}

// queryContext derives the repository query context from the instance's
// profile metadata, per spec §6.
func (e *Engine) queryContext() repository.QueryContext {
	md := e.ctx.Instance.Profile().Metadata
	qc := repository.QueryContext{}
	if gv, ok := md.GameVersion(); ok {
		qc.GameVersion = gv
	}
	if loader, ok := md.Loader(); ok {
		qc.ModLoader = loader
	}
	return qc
}
