package sf

import (
	"errors"
	"fmt"
)

// Sentinel causes a SyntaxError can wrap, kept from the teacher's
// errors.New style so callers can classify a parse failure with
// errors.Is instead of matching Reason strings.
var (
	// ErrUnexpectedEOL reports that the input ended before the grammar
	// expected it to.
	ErrUnexpectedEOL = errors.New("sf: unexpected end of input")

	// ErrUnrecognized reports an illegal or out-of-place byte.
	ErrUnrecognized = errors.New("sf: unrecognized character")

	// ErrTooManyDigits reports an integer or decimal component that
	// exceeds its RFC 8941 digit cap.
	ErrTooManyDigits = errors.New("sf: too many digits")
)

// SyntaxError reports a grammar violation encountered while parsing a
// structured field value. Offset is the byte position in the input at
// which the violation was detected. Cause, when set, is one of the
// sentinel errors above or another error describing why the bytes at
// Offset were rejected, and is reachable via errors.Is/errors.As through
// Unwrap.
type SyntaxError struct {
	Offset int
	Reason string
	Cause  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sf: syntax error at byte %d: %s", e.Offset, e.Reason)
}

func (e *SyntaxError) Unwrap() error { return e.Cause }

func syntaxError(offset int, cause error, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// InvalidCharacterError reports a constructor argument whose bytes violate
// the character set of the bare value type being constructed.
type InvalidCharacterError struct {
	Where string
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("sf: invalid character in %s", e.Where)
}

// OutOfRangeError reports a numeric value outside the range RFC 8941
// permits for its type.
type OutOfRangeError struct {
	What  string
	Value string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("sf: %s out of range: %s", e.What, e.Value)
}

// InvalidKeyError reports a parameter or dictionary key that does not
// match the key grammar `[a-z*][a-z0-9.*_-]*`.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("sf: invalid key: %q", e.Key)
}

// InvalidArgumentError reports a misuse of an API, such as attempting to
// insert a parameterized item where only a bare item is permitted.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("sf: invalid argument: %s", e.Reason)
}

// IndexOutOfRangeError reports a container index lookup outside bounds.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("sf: index %d out of range for length %d", e.Index, e.Len)
}

// NotFoundError reports a map lookup for an absent key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sf: key not found: %q", e.Key)
}

// ForbiddenOperationError is surfaced by adapters that expose an
// indexed-assignment-like facade over an otherwise immutable value; the
// core library never constructs one directly, but adapters built on top
// of it can use it to report attempted in-place writes.
type ForbiddenOperationError struct {
	Reason string
}

func (e *ForbiddenOperationError) Error() string {
	return fmt.Sprintf("sf: forbidden operation: %s", e.Reason)
}

// SerializationError reports a value tree that cannot be serialized
// because one of its invariants was bypassed through unsafe construction.
// No function in this package returns it: the Canonical methods return a
// plain string and do not re-validate their value, so a value built by
// direct conversion (for example Token("1bad")) is serialized as is,
// without an error.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("sf: cannot serialize: %s", e.Reason)
}
