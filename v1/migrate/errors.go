package migrate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCollections is matched by *MissingCollectionsError.
	ErrMissingCollections = errors.New("source collections not found")

	// ErrCollision is matched by *CollisionError.
	ErrCollision = errors.New("collections already exist at destination")

	// ErrCountMismatch is matched by *CountMismatchError.
	ErrCountMismatch = errors.New("point count mismatch")

	// ErrInvalidBatchSize is returned for a batch size below 1.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrNoCollectionConfig is returned when the source reports a collection
	// without parameters to recreate it from.
	ErrNoCollectionConfig = errors.New("collection has no config")

	// ErrNoPayloadSchema is returned for a payload schema entry without a type.
	ErrNoPayloadSchema = errors.New("payload field has no schema")
)

// MissingCollectionsError lists requested collections the source does not have.
type MissingCollectionsError struct {
	Collections []string
}

func (e *MissingCollectionsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingCollections, strings.Join(e.Collections, ", "))
}

func (e *MissingCollectionsError) Is(target error) bool {
	return target == ErrMissingCollections
}

// CollisionError lists requested collections that already exist at the
// destination.
type CollisionError struct {
	Collections []string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCollision, strings.Join(e.Collections, ", "))
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// CountMismatchError is returned after a copy whose destination point count
// differs from the source. The copied data is left in place.
type CountMismatchError struct {
	Collection  string
	Source      uint64
	Destination uint64
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s in collection %q: source has %d points, destination has %d",
		ErrCountMismatch, e.Collection, e.Source, e.Destination)
}

func (e *CountMismatchError) Is(target error) bool {
	return target == ErrCountMismatch
}

// IsCollisionError checks if the error reports existing destination collections.
func IsCollisionError(err error) bool {
	return errors.Is(err, ErrCollision)
}

// IsCountMismatchError checks if the error reports a failed count check.
func IsCountMismatchError(err error) bool {
	return errors.Is(err, ErrCountMismatch)
}
