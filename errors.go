package roar64

import (
	"errors"

	"github.com/aglyzov/roar64/container"
)

var (
	// ErrEmpty is returned by operations requiring a non-empty bitmap.
	ErrEmpty = errors.New("roar64: empty bitmap")

	// ErrInvalidRange reports a malformed range: empty, or wrapping
	// past the top of the unsigned 64-bit space.
	ErrInvalidRange = errors.New("roar64: invalid range")

	// ErrOutOfBounds reports a select index at or past the cardinality.
	ErrOutOfBounds = errors.New("roar64: index out of bounds")

	// ErrCardinalityOverflow reports a cardinality too large for the
	// narrower result the caller asked for.
	ErrCardinalityOverflow = errors.New("roar64: cardinality overflows requested type")

	// ErrFormat reports serialized input failing structural validation.
	ErrFormat = container.ErrFormat
)
