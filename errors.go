package protfeat

import (
	"errors"
	"fmt"

	"github.com/hupe1980/protfeat/hbond"
	"github.com/hupe1980/protfeat/interaction"
	"github.com/hupe1980/protfeat/internal/pool"
)

var (
	// ErrProtonationFailure matches hydrogen-bond failures caused by the
	// protonation tool, including timeouts.
	ErrProtonationFailure = hbond.ErrProtonationFailure

	// ErrGeometryFailure matches hydrogen-bond failures of the geometry step.
	ErrGeometryFailure = hbond.ErrGeometryFailure

	// ErrNoProtonator marks the hydrogen-bond kind as skipped when no
	// protonator is configured.
	ErrNoProtonator = hbond.ErrNoProtonator

	// ErrMalformedResidue matches residues a detector skipped.
	ErrMalformedResidue = interaction.ErrMalformedResidue

	// ErrInvalidOptions is wrapped by option validation failures.
	ErrInvalidOptions = interaction.ErrInvalidOptions

	// ErrNilStructure is returned when a nil structure is analyzed.
	ErrNilStructure = errors.New("nil structure")

	// ErrDetectorPanic wraps a panic recovered from a detector.
	ErrDetectorPanic = errors.New("detector panicked")

	// ErrClosed is reported for structures scanned after Close.
	ErrClosed = pool.ErrClosed
)

// FeatureError reports a failed interaction kind of one structure.
//
// The original underlying error can be accessed via errors.Unwrap.
type FeatureError struct {
	Structure string
	Kind      Kind
	cause     error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s of %q: %v", e.Kind, e.Structure, e.cause)
}

func (e *FeatureError) Unwrap() error { return e.cause }

func translateError(structure string, kind Kind, err error) error {
	if err == nil {
		return nil
	}

	var fe *FeatureError
	if errors.As(err, &fe) {
		return err
	}

	return &FeatureError{Structure: structure, Kind: kind, cause: err}
}
