// Package resolve implements the bounded breadth-first resolution engine
// (spec §4.5): a wave-scoped, deduplicating expansion over a dependency
// graph against pluggable repositories, producing a deterministic package
// closure.
package resolve

import (
	"context"
	"errors"

	"github.com/gravitylab/trident/pkg/purl"
	"github.com/gravitylab/trident/pkg/repository"
)

// Lookup resolves a repository label to the Repository that serves it.
// Either shape permitted by spec's Design Notes (a vector dispatched by
// label equality, or a factory function) satisfies this signature — a
// map-backed closure is the common case.
type Lookup func(label string) (repository.Repository, bool)

// Engine drives the bounded BFS expansion described in spec §4.5. It is
// not safe for concurrent use: only one Handle may be in flight at a time,
// matching the single-threaded cooperative scheduling model (spec §5).
type Engine struct {
	lookup   Lookup
	qc       repository.QueryContext
	maxDepth int

	processed map[string]struct{}
	finished  []repository.Package

	appended    []string
	currentWave []string
	waveIndex   int
	depth       int
}

// NewEngine builds an Engine seeded with the given initial tasks (the
// flattened purls of all enabled layers' content, per spec), dispatching
// through lookup, bounded to at most maxDepth waves.
func NewEngine(tasks []string, lookup Lookup, qc repository.QueryContext, maxDepth int) *Engine {
	return &Engine{
		lookup:    lookup,
		qc:        qc,
		maxDepth:  maxDepth,
		processed: make(map[string]struct{}, len(tasks)),
		appended:  append([]string(nil), tasks...),
	}
}

// Next yields the next Handle to perform, or (nil, false) once the engine
// is exhausted: appended is empty, or maxDepth waves have been started.
// Handles within one wave are produced in task-insertion order; wave N is
// fully handed out before wave N+1 begins (ordering guarantees, spec §5).
func (e *Engine) Next() (*Handle, bool) {
	for {
		if e.waveIndex < len(e.currentWave) {
			task := e.currentWave[e.waveIndex]
			e.waveIndex++
			return &Handle{engine: e, task: task}, true
		}
		if e.depth >= e.maxDepth || len(e.appended) == 0 {
			return nil, false
		}

		wave := make([]string, 0, len(e.appended))
		for _, t := range e.appended {
			if _, seen := e.processed[t]; seen {
				continue
			}
			e.processed[t] = struct{}{}
			wave = append(wave, t)
		}
		e.appended = nil
		e.depth++
		e.currentWave = wave
		e.waveIndex = 0
		// Loop back around: if the wave turned out empty (every task was
		// already processed), the top-of-loop checks will see appended
		// empty and terminate on the next pass.
	}
}

// Finished returns the packages resolved so far, in completion order.
// Safe to call at any point, including after the engine is exhausted or
// abandoned mid-run (spec's publish-on-drop invariant is implemented by
// the caller reading this after it stops calling Next).
func (e *Engine) Finished() []repository.Package {
	return e.finished
}

// Processed reports whether task has ever been enqueued into a wave.
func (e *Engine) Processed(task string) bool {
	_, ok := e.processed[task]
	return ok
}

// Depth returns the number of waves started so far.
func (e *Engine) Depth() int { return e.depth }

// Handle is one resolve task handed to the caller to perform.
type Handle struct {
	engine *Engine
	task   string
}

// Task returns the purl string this handle will resolve.
func (h *Handle) Task() string { return h.task }

// Perform dispatches the handle's task to its repository. A successful
// resolve appends the package to the engine's finished list and enqueues
// its required dependencies' purls for the next wave; optional
// dependencies are recorded on the package but never enqueued. A failed
// handle contributes nothing to either list — the caller decides whether
// to keep iterating the engine.
func (h *Handle) Perform(ctx context.Context) (repository.Package, error) {
	pkg, err := dispatch(ctx, h.task, h.engine.lookup, h.engine.qc)
	if err != nil {
		return repository.Package{}, err
	}
	h.engine.finished = append(h.engine.finished, pkg)
	for _, d := range pkg.Dependencies {
		if d.Required {
			h.engine.appended = append(h.engine.appended, d.Purl)
		}
	}
	return pkg, nil
}

func dispatch(ctx context.Context, task string, lookup Lookup, qc repository.QueryContext) (repository.Package, error) {
	p, err := purl.Parse(task)
	if err != nil {
		return repository.Package{}, repository.NewError(repository.KindInvalidFormat, task, err)
	}
	if p.Version == "" {
		return repository.Package{}, repository.NewError(repository.KindInvalidFormat, task, errors.New("missing version slot"))
	}

	repo, ok := lookup(p.Repo)
	if !ok {
		return repository.Package{}, repository.NewError(repository.KindNotFound, task, errors.New("unknown repository label"))
	}

	pkg, err := repo.Resolve(ctx, p.Project, p.Version, qc)
	if err != nil {
		var re *repository.Error
		if errors.As(err, &re) {
			return repository.Package{}, re
		}
		return repository.Package{}, repository.NewError(repository.KindUnknown, task, err)
	}
	return pkg, nil
}
