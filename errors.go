package vglite

import "errors"

// Sentinel errors returned by buffer, path and draw operations.
// Callers match them with errors.Is; returned errors usually wrap one of
// these with extra context.
var (
	// ErrUnsupportedFormat is returned when a buffer format has no entry in
	// the format table.
	ErrUnsupportedFormat = errors.New("vglite: unsupported format")

	// ErrOutOfMemory is returned when buffer storage cannot be allocated.
	ErrOutOfMemory = errors.New("vglite: out of memory")

	// ErrMalformedPath is returned when a path command has no current point
	// or carries non-finite coordinates.
	ErrMalformedPath = errors.New("vglite: malformed path")

	// ErrInvalidGradient is returned for degenerate gradients.
	ErrInvalidGradient = errors.New("vglite: invalid gradient")

	// ErrInvalidTarget is returned when drawing into a buffer without storage.
	ErrInvalidTarget = errors.New("vglite: invalid target")

	// ErrGenericIO is returned when reading or writing files fails.
	ErrGenericIO = errors.New("vglite: i/o error")

	// ErrInvalidArgument is returned for nil or out-of-range arguments.
	ErrInvalidArgument = errors.New("vglite: invalid argument")

	// ErrNotSupported is returned for requests the rasterizer cannot honor.
	ErrNotSupported = errors.New("vglite: not supported")
)

// ErrorCode is the numeric status used by vg_lite style C interfaces.
type ErrorCode int

// Status codes. Values match the vg_lite error enumeration.
const (
	CodeSuccess         ErrorCode = 0
	CodeInvalidArgument ErrorCode = 1
	CodeOutOfMemory     ErrorCode = 2
	CodeNoContext       ErrorCode = 3
	CodeTimeout         ErrorCode = 4
	CodeOutOfResources  ErrorCode = 5
	CodeGenericIO       ErrorCode = 6
	CodeNotSupported    ErrorCode = 7
)

// String returns the vg_lite name of the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "VG_LITE_SUCCESS"
	case CodeInvalidArgument:
		return "VG_LITE_INVALID_ARGUMENT"
	case CodeOutOfMemory:
		return "VG_LITE_OUT_OF_MEMORY"
	case CodeNoContext:
		return "VG_LITE_NO_CONTEXT"
	case CodeTimeout:
		return "VG_LITE_TIMEOUT"
	case CodeOutOfResources:
		return "VG_LITE_OUT_OF_RESOURCES"
	case CodeGenericIO:
		return "VG_LITE_GENERIC_IO"
	case CodeNotSupported:
		return "VG_LITE_NOT_SUPPORT"
	default:
		return "VG_LITE_UNKNOWN"
	}
}

// Code maps err to its numeric status. A nil error is CodeSuccess and
// unrecognized errors map to CodeInvalidArgument.
func Code(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeSuccess
	case errors.Is(err, ErrOutOfMemory):
		return CodeOutOfMemory
	case errors.Is(err, ErrGenericIO):
		return CodeGenericIO
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrNotSupported):
		return CodeNotSupported
	default:
		return CodeInvalidArgument
	}
}
