// Package rendererr defines the classified error taxonomy the renderer uses
// to decide, per failure, whether to abort the current frame, skip a single
// offending object, or silently substitute a fallback.
package rendererr

import "fmt"

// Kind classifies a render error by how the caller should react to it.
type Kind int

const (
	// Fatal errors abort the current frame; they are logged and the
	// renderer continues at the next frame rather than terminating the
	// process. Device-lost is the one exception: it is fatal engine-wide
	// and is surfaced to the host application instead of being retried.
	Fatal Kind = iota

	// Recoverable errors are silent substitutions: a missing material
	// falls back to the default material, a missing texture falls back
	// to 1x1 white, a light that doesn't fit the shadow atlas loses its
	// shadow but keeps lighting.
	Recoverable

	// Validation errors are caught during frame extraction and reported
	// once per offending object; the object is skipped for that frame
	// only, not removed from the scene.
	Validation
)

func (k Kind) String() string {
	switch k {
	case Fatal:
		return "fatal"
	case Recoverable:
		return "recoverable"
	case Validation:
		return "validation"
	default:
		return "unknown"
	}
}

// RenderError wraps an underlying error with a Kind and, for Validation
// errors, an identifier for the offending object so duplicate reports for
// the same object within a frame can be suppressed upstream.
type RenderError struct {
	Kind   Kind
	Object string // empty unless Kind == Validation
	err    error
}

func (e *RenderError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Object, e.err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *RenderError) Unwrap() error {
	return e.err
}

// New wraps err as a RenderError of the given kind.
func New(kind Kind, err error) *RenderError {
	return &RenderError{Kind: kind, err: err}
}

// Newf wraps a formatted error as a RenderError of the given kind.
func Newf(kind Kind, format string, args ...any) *RenderError {
	return &RenderError{Kind: kind, err: fmt.Errorf(format, args...)}
}

// NewValidation wraps err as a Validation error tagged with the offending
// object's identifier.
func NewValidation(object string, err error) *RenderError {
	return &RenderError{Kind: Validation, Object: object, err: err}
}

// Is reports whether err is a *RenderError of the given kind. Intended for
// use with errors.Is-style call sites that only care about the kind.
func Is(err error, kind Kind) bool {
	re, ok := err.(*RenderError)
	return ok && re.Kind == kind
}
