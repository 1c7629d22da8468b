package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel is returned when a nil model reaches the engine.
	ErrNilModel = errors.New("model: nil model")
	// ErrMissingAccessor is returned when a descriptor has no backing field.
	ErrMissingAccessor = errors.New("model: field has no accessor")
	// ErrUnsupportedNumber is returned when a number control targets a
	// non-numeric type.
	ErrUnsupportedNumber = errors.New("model: unsupported numeric type")
	// ErrMalformedOptions is returned for option strings with more than one
	// '=' in an entry.
	ErrMalformedOptions = errors.New("model: malformed key/value pairs")
	// ErrInvalidElement is returned when a tag hint is not a valid element
	// name.
	ErrInvalidElement = errors.New("model: invalid element name")
	// ErrInvalidPattern is returned when a pattern constraint does not
	// compile.
	ErrInvalidPattern = errors.New("model: invalid pattern")
)

// ErrorKind labels failures surfaced by the engine.
type ErrorKind int

const (
	// KindConfiguration covers malformed metadata such as option strings or
	// unsupported control types.
	KindConfiguration ErrorKind = iota + 1
	// KindStructural covers nil models and missing accessors.
	KindStructural
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// Error labels a failure with its kind and the field it relates to.
type Error struct {
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("model: %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("model: %s error on field %q: %v", e.Kind, e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ConfigurationError wraps err as a configuration failure for field.
func ConfigurationError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindConfiguration, Field: field, Err: err}
}

// StructuralError wraps err as a structural failure for field.
func StructuralError(field string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStructural, Field: field, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind, true
	}
	return 0, false
}
