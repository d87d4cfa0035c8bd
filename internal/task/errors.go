package task

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes task list errors.
type ErrorCode string

const (
	// ErrCodeCorruptState indicates the persisted blob is not an array of strings.
	ErrCodeCorruptState ErrorCode = "CORRUPT_STATE"

	// ErrCodeIndexOutOfRange indicates an index outside [0, len).
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodePersistence indicates a storage read or write failed.
	ErrCodePersistence ErrorCode = "PERSISTENCE"

	// ErrCodeNoOp indicates an operation had nothing to do.
	ErrCodeNoOp ErrorCode = "NO_OP"
)

// CorruptStateError reports a persisted blob that could not be decoded.
// Callers recover by treating the list as empty.
type CorruptStateError struct {
	// Key is the storage key the blob was read from, if known.
	Key string

	Err error
}

func (e *CorruptStateError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: corrupt task blob at key %q: %v", ErrCodeCorruptState, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: corrupt task blob: %v", ErrCodeCorruptState, e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// Code returns ErrCodeCorruptState.
func (e *CorruptStateError) Code() ErrorCode {
	return ErrCodeCorruptState
}

// IndexOutOfRangeError reports a replace or remove at an invalid index.
// The list is never modified when this is returned.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d not in [0, %d)", ErrCodeIndexOutOfRange, e.Index, e.Length)
}

// Code returns ErrCodeIndexOutOfRange.
func (e *IndexOutOfRangeError) Code() ErrorCode {
	return ErrCodeIndexOutOfRange
}

// PersistenceError reports a failed read or write of the storage slot.
// In-memory state stays usable; durability resumes at the next good save.
type PersistenceError struct {
	// Op is "load" or "save".
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrCodePersistence, e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Code returns ErrCodePersistence.
func (e *PersistenceError) Code() ErrorCode {
	return ErrCodePersistence
}

// NoOpWarning is informational, not a failure. It is returned when an
// operation found nothing to change, for example clearing an empty list.
type NoOpWarning struct {
	Op      string
	Message string
}

func (w *NoOpWarning) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeNoOp, w.Op, w.Message)
}

// Code returns ErrCodeNoOp.
func (w *NoOpWarning) Code() ErrorCode {
	return ErrCodeNoOp
}

// IsCorruptState reports whether err wraps a CorruptStateError.
func IsCorruptState(err error) bool {
	var ce *CorruptStateError
	return errors.As(err, &ce)
}

// IsIndexOutOfRange reports whether err wraps an IndexOutOfRangeError.
func IsIndexOutOfRange(err error) bool {
	var ie *IndexOutOfRangeError
	return errors.As(err, &ie)
}

// IsPersistence reports whether err wraps a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsNoOp reports whether err wraps a NoOpWarning.
func IsNoOp(err error) bool {
	var w *NoOpWarning
	return errors.As(err, &w)
}
