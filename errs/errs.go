package errs

import (
	"errors"
	"fmt"
)

// Enumeration of the error categories raised by the backend.  The concrete
// error types below match exactly one of these through `errors.Is`.
var (
	ErrInvalidHandle          = errors.New("invalid handle")
	ErrUnknownEnumValue       = errors.New("unknown enum value")
	ErrBuilderNotPositioned   = errors.New("builder not positioned")
	ErrNativeCallFailed       = errors.New("native call failed")
	ErrVerificationFailed     = errors.New("verification failed")
	ErrLibraryVersionMismatch = errors.New("library version mismatch")

	// ErrStalePlaceholder is raised when a replaced debug-info placeholder is
	// used again.  It is a kind of invalid handle.
	ErrStalePlaceholder = fmt.Errorf("%w: stale placeholder", ErrInvalidHandle)

	// ErrSymbolConflict is raised when a symbol is redeclared with another
	// type.  It is a kind of invalid handle.
	ErrSymbolConflict = fmt.Errorf("%w: conflicting symbol", ErrInvalidHandle)
)

// -----------------------------------------------------------------------------

// HandleError is raised when a handle violates a call contract: it is null
// where a value is required, it is of the wrong kind, or it has outlived its
// owner.
type HandleError struct {
	// Op is the operation which rejected the handle.
	Op string

	// Kind is the handle kind expected by the operation, if any.
	Kind string

	// Err is the underlying category: ErrInvalidHandle or one of its
	// refinements.
	Err error
}

func (e *HandleError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}

	return fmt.Sprintf("%s: %s (expected %s)", e.Op, e.Err, e.Kind)
}

func (e *HandleError) Unwrap() error {
	return e.Err
}

// InvalidHandle creates a new handle error for op.
func InvalidHandle(op, kind string) *HandleError {
	return &HandleError{Op: op, Kind: kind, Err: ErrInvalidHandle}
}

// SymbolConflict creates a new handle error for a conflicting redeclaration of
// name.
func SymbolConflict(op, name string) *HandleError {
	return &HandleError{Op: op + " `" + name + "`", Err: ErrSymbolConflict}
}

// StalePlaceholder creates a new handle error for a retired placeholder.
func StalePlaceholder(op string) *HandleError {
	return &HandleError{Op: op, Err: ErrStalePlaceholder}
}

// UnknownEnumValueError is returned when an integer received from the native
// library matches no member of the expected enumeration.
type UnknownEnumValueError struct {
	Enum string
	Raw  int32
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value: %d", e.Enum, e.Raw)
}

func (e *UnknownEnumValueError) Is(target error) bool {
	return target == ErrUnknownEnumValue
}

// NotPositionedError is raised when an instruction is emitted by a builder
// which has no insertion point.
type NotPositionedError struct {
	Op string
}

func (e *NotPositionedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, ErrBuilderNotPositioned)
}

func (e *NotPositionedError) Is(target error) bool {
	return target == ErrBuilderNotPositioned
}

// NativeCallError is returned when a native call signals failure.  Message is
// the text extracted from the native error object.
type NativeCallError struct {
	Op      string
	Message string
}

func (e *NativeCallError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrNativeCallFailed)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *NativeCallError) Is(target error) bool {
	return target == ErrNativeCallFailed
}

// VerificationError is returned when the module verifier rejects a module.
// Diagnostic holds the complete verifier output.
type VerificationError struct {
	Module     string
	Diagnostic string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("module `%s` failed verification:\n%s", e.Module, e.Diagnostic)
}

func (e *VerificationError) Is(target error) bool {
	return target == ErrVerificationFailed
}

// VersionMismatchError is raised when the loaded native library does not
// match the version this package was built against.
type VersionMismatchError struct {
	Want string
	Got  string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, loaded %s", ErrLibraryVersionMismatch, e.Want, e.Got)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrLibraryVersionMismatch
}
