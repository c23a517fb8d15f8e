package conversion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariant is returned when a polymorphic value holds no
	// variant, an unsupported variant, or more than one.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrUnsupportedEnum is returned for enum values without a counterpart.
	ErrUnsupportedEnum = errors.New("unsupported enum value")

	// ErrInvalidPointID is returned for malformed point identifiers.
	ErrInvalidPointID = errors.New("invalid point id")

	// ErrMissingField is returned when a required nested value is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedValue is returned for payload values with no dynamic
	// value encoding.
	ErrUnsupportedValue = errors.New("unsupported payload value")
)

func invalidVariant(kind string, v any) error {
	return fmt.Errorf("%w: %s: %v", ErrInvalidVariant, kind, v)
}

func unsupportedEnum(kind string, v any) error {
	return fmt.Errorf("%w: %s: %v", ErrUnsupportedEnum, kind, v)
}

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// field prefixes err with the path of the field being converted.
func field(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
