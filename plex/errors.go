package plex

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Plex and Dict operations. The concrete error
// values carry more detail (see [LookupError], [ShapeError]); match with
// errors.Is against these sentinels, or errors.As against the structs.
var (
	// ErrLookup is returned when a name resolves neither on the container,
	// nor on any of its elements, nor as a subscript fallback.
	ErrLookup = errors.New("plex: attribute or key not found")

	// ErrShape is returned when a value cannot be broadcast because the
	// lengths are incompatible and no scalar-broadcast rule applies.
	ErrShape = errors.New("plex: shape mismatch")

	// ErrStructure is returned when nesting structures are irreconcilable,
	// e.g. ungrouping more levels than exist at a strict request depth.
	ErrStructure = errors.New("plex: irreconcilable structure")

	// ErrHashability is returned when grouping or uniqueness reduction is
	// attempted on values that cannot be used as map keys.
	ErrHashability = errors.New("plex: unhashable value")

	// ErrIndexOutOfRange is returned when an integer index is outside the
	// collection bounds.
	ErrIndexOutOfRange = errors.New("plex: index out of range")
)

// LookupError reports a failed attribute or key resolution. Both the
// container-level and the element-level causes are attached so callers can
// tell which layer failed.
type LookupError struct {
	Name      string
	Container error // why the container could not resolve Name itself
	Element   error // why element-level resolution failed
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("plex: cannot resolve %q", e.Name)
	if e.Container != nil {
		msg += fmt.Sprintf(" (container: %v)", e.Container)
	}
	if e.Element != nil {
		msg += fmt.Sprintf(" (element: %v)", e.Element)
	}
	return msg
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

func (e *LookupError) Unwrap() []error {
	var causes []error
	if e.Container != nil {
		causes = append(causes, e.Container)
	}
	if e.Element != nil {
		causes = append(causes, e.Element)
	}
	return causes
}

// ShapeError reports an incompatible broadcast length.
type ShapeError struct {
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("plex: shape mismatch: want length %d, got %d", e.Want, e.Got)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// StructureError reports an impossible structural request, such as
// ungrouping past the deepest nesting level.
type StructureError struct {
	Op     string
	Detail string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("plex: %s: %s", e.Op, e.Detail)
}

func (e *StructureError) Is(target error) bool { return target == ErrStructure }

// HashabilityError reports a value that cannot serve as a group key.
// Map the value through [Surrogate] first if grouping by it is required.
type HashabilityError struct {
	Value any
}

func (e *HashabilityError) Error() string {
	return fmt.Sprintf("plex: unhashable value of type %T", e.Value)
}

func (e *HashabilityError) Is(target error) bool { return target == ErrHashability }

// bothFailed combines the deep-path and shallow-path errors of a two-phase
// operation so that neither cause is lost.
func bothFailed(deep, shallow error) error {
	return errors.Join(deep, shallow)
}
