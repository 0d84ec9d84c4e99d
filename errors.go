package spectacle

import (
	"errors"
	"fmt"
	"strconv"
)

// Error kinds. Every error returned by the pipeline wraps exactly one of these,
// test with errors.Is.
var (
	// ErrMalformedOutline is returned when the input shape violates the
	// closure, point count or symmetry assumptions.
	ErrMalformedOutline = errors.New("malformed outline")
	// ErrDegenerateGeometry is returned when offsetting or bending produces
	// self intersecting or zero measure geometry.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInsufficientBridgeWidth is returned when nosepads can not be placed
	// between the lens regions.
	ErrInsufficientBridgeWidth = errors.New("insufficient bridge width")
	// ErrInvalidParameter is returned for out of range configuration values.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Error is the concrete error type returned by the pipeline stages.
type Error struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Index of the offending point. -1 when not applicable.
	Index int
	// Param is the name of the offending parameter, if any.
	Param string
	Msg   string
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Param != "" {
		s += ": " + e.Param
	}
	if e.Index >= 0 {
		s += ": point " + strconv.Itoa(e.Index)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}

func (e *Error) Unwrap() error { return e.Kind }

// MalformedOutline returns an ErrMalformedOutline error. Use index -1
// when no single point is at fault.
func MalformedOutline(index int, format string, a ...any) error {
	return &Error{Kind: ErrMalformedOutline, Index: index, Msg: fmt.Sprintf(format, a...)}
}

// DegenerateGeometry returns an ErrDegenerateGeometry error.
func DegenerateGeometry(index int, format string, a ...any) error {
	return &Error{Kind: ErrDegenerateGeometry, Index: index, Msg: fmt.Sprintf(format, a...)}
}

// InsufficientBridgeWidth returns an ErrInsufficientBridgeWidth error.
func InsufficientBridgeWidth(format string, a ...any) error {
	return &Error{Kind: ErrInsufficientBridgeWidth, Index: -1, Param: "bridge_width", Msg: fmt.Sprintf(format, a...)}
}

// InvalidParameter returns an ErrInvalidParameter error for the named parameter.
func InvalidParameter(param, format string, a ...any) error {
	return &Error{Kind: ErrInvalidParameter, Index: -1, Param: param, Msg: fmt.Sprintf(format, a...)}
}
