package tree

import (
	"errors"
	"fmt"

	"github.com/roach88/simgraph/internal/entity"
)

// StructuralErrorCode categorizes violations of tree invariants.
type StructuralErrorCode string

const (
	// ErrCodeDoubleParent indicates a node would receive a second parent.
	ErrCodeDoubleParent StructuralErrorCode = "DOUBLE_PARENT"

	// ErrCodeDuplicateRoot indicates an identifier is already a root.
	ErrCodeDuplicateRoot StructuralErrorCode = "DUPLICATE_ROOT"

	// ErrCodeRootedChild indicates a root node would be given a parent.
	ErrCodeRootedChild StructuralErrorCode = "ROOTED_CHILD"

	// ErrCodeSelfParent indicates a node would become its own child.
	ErrCodeSelfParent StructuralErrorCode = "SELF_PARENT"

	// ErrCodeKindMismatch indicates one identifier was classified as two kinds.
	ErrCodeKindMismatch StructuralErrorCode = "KIND_MISMATCH"

	// ErrCodeOutputReassigned indicates a node's output would be set twice.
	ErrCodeOutputReassigned StructuralErrorCode = "OUTPUT_REASSIGNED"

	// ErrCodeInvariant indicates Validate found a broken invariant.
	ErrCodeInvariant StructuralErrorCode = "INVARIANT_VIOLATION"
)

// StructuralError reports a logic fault in tree construction. The pass that
// produced it must be aborted: the tree's invariants no longer hold.
type StructuralError struct {
	Code    StructuralErrorCode
	Message string
	ID      entity.ID
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.ID != entity.Nil {
		return fmt.Sprintf("%s: %s (uuid=%s)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStructuralError returns true if err is or wraps a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// HasCode returns true if err is or wraps a StructuralError with code.
func HasCode(err error, code StructuralErrorCode) bool {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func structuralf(code StructuralErrorCode, id entity.ID, format string, args ...any) *StructuralError {
	return &StructuralError{Code: code, Message: fmt.Sprintf(format, args...), ID: id}
}

// DiagnosticCode categorizes absorbed, recoverable inconsistencies.
type DiagnosticCode string

const (
	// DiagOrphanGeometry: a geometry attached to a body that was not reconstructed.
	DiagOrphanGeometry DiagnosticCode = "ORPHAN_GEOMETRY"

	// DiagMissingMaterial: a geometry references a material the source does not know.
	DiagMissingMaterial DiagnosticCode = "MISSING_MATERIAL"

	// DiagFrameCycle: frame ancestry loops; the assembly falls back to root.
	DiagFrameCycle DiagnosticCode = "FRAME_CYCLE"

	// DiagUnmaterializedParent: a node's parent has no output yet; generation skipped it.
	DiagUnmaterializedParent DiagnosticCode = "UNMATERIALIZED_PARENT"
)

// Diagnostic records an inconsistency that was logged and absorbed.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	ID      entity.ID      `json:"uuid"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (uuid=%s)", d.Code, d.Message, d.ID)
}
