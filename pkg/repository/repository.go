package repository

import (
	"context"
	"errors"
	"fmt"
)

// Label identifies a repository backend (e.g. "curseforge", "modrinth").
// It is the repository segment of a purl (pkg:<label>/<project>@<version>).
type Label string

// QueryContext carries the query-shaping state the deploy engine threads
// through every resolve call, sourced from the instance's profile
// metadata: the declared game version, the first recognized mod loader
// component (if any), and an optional content-kind filter.
type QueryContext struct {
	GameVersion string
	ModLoader   string
	Kind        Kind
}

// Repository is the abstract capability the resolve engine dispatches
// against. Search is defined for completeness (spec §4.2) but is not
// exercised by the deploy core.
type Repository interface {
	Label() Label
	Resolve(ctx context.Context, projectID, versionID string, qc QueryContext) (Package, error)
	Search(ctx context.Context, keyword string, qc QueryContext) ([]Project, error)
}

// ErrorKind classifies a resolve failure per the spec's error taxonomy.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota
	// KindNotFound means the resource is absent in the named repository,
	// or the repository label itself is unknown.
	KindNotFound
	// KindUnstableNetwork is a transient transport failure, retryable at
	// the policy level (by starting a new deploy run).
	KindUnstableNetwork
	// KindInvalidFormat means a purl was malformed or missing its
	// version slot.
	KindInvalidFormat
	// KindUnsupported means the repository refuses the operation.
	KindUnsupported
	// KindUnableToParse means the upstream response could not be
	// interpreted.
	KindUnableToParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindUnstableNetwork:
		return "UnstableNetwork"
	case KindInvalidFormat:
		return "InvalidFormat"
	case KindUnsupported:
		return "Unsupported"
	case KindUnableToParse:
		return "UnableToParse"
	default:
		return "Unknown"
	}
}

// Error is the error type every Repository.Resolve call and the resolve
// engine's dispatch logic produce. Task identifies the purl string being
// resolved when the error occurred.
type Error struct {
	Kind ErrorKind
	Task string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %s: %v", e.Task, e.Kind, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s", e.Task, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error for task with the given kind, optionally
// wrapping an underlying cause.
func NewError(kind ErrorKind, task string, cause error) *Error {
	return &Error{Kind: kind, Task: task, Err: cause}
}

// Is reports whether err (or something it wraps) is a *Error of kind.
func Is(err error, kind ErrorKind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
