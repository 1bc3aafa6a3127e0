package gp

import (
	"errors"

	"github.com/slundi/gogp/bitio"
)

// Sentinel errors for the decode/encode error taxonomy. Wrap these with
// fmt.Errorf("%s: %w", ...) to attach context; callers branch with errors.Is.
// ErrEndOfInput and ErrMalformedString are the byte stream's own sentinels,
// so read failures surfacing from Decode match them too.
var (
	ErrEndOfInput         = bitio.ErrEndOfInput
	ErrUnknownVersion     = errors.New("unknown version")
	ErrMalformedString    = bitio.ErrMalformedString
	ErrOutOfRange         = errors.New("value out of range")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnsupported        = errors.New("unsupported format")
)
