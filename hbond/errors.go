package hbond

import (
	"errors"
	"fmt"
)

var (
	// ErrProtonationFailure matches every ProtonationError.
	ErrProtonationFailure = errors.New("protonation failed")

	// ErrGeometryFailure matches every GeometryError.
	ErrGeometryFailure = errors.New("hydrogen bond geometry failed")

	// ErrNoProtonator is returned by NewDetector without a Protonator.
	ErrNoProtonator = errors.New("hbond: protonator is required")
)

// ProtonationError reports that hydrogens could not be added to a structure.
//
// The original underlying error can be accessed via errors.Unwrap.
type ProtonationError struct {
	Structure string
	// Timeout is set when the protonation deadline expired.
	Timeout bool
	cause   error
}

func (e *ProtonationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("protonation of %q timed out: %v", e.Structure, e.cause)
	}
	return fmt.Sprintf("protonation of %q failed: %v", e.Structure, e.cause)
}

func (e *ProtonationError) Unwrap() error { return e.cause }

// Is makes errors.Is(e, ErrProtonationFailure) true.
func (e *ProtonationError) Is(target error) bool { return target == ErrProtonationFailure }

// GeometryError reports a failure of the hydrogen bond geometry boundary.
//
// The original underlying error can be accessed via errors.Unwrap.
type GeometryError struct {
	Structure string
	cause     error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("hydrogen bond geometry of %q failed: %v", e.Structure, e.cause)
}

func (e *GeometryError) Unwrap() error { return e.cause }

// Is makes errors.Is(e, ErrGeometryFailure) true.
func (e *GeometryError) Is(target error) bool { return target == ErrGeometryFailure }
