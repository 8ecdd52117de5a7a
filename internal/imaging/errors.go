package imaging

import "errors"

// Errors returned by registry lookups, transforms and codecs. Callers should match
// them with errors.Is; the returned errors usually wrap one of these with context.
var (
	// ErrImageNotFound means a referenced name is absent from the registry.
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidHeader means a text image did not start with a valid P3 header.
	ErrInvalidHeader = errors.New("invalid image header")

	// ErrDimensionMismatch means sources that must share dimensions do not.
	ErrDimensionMismatch = errors.New("image dimensions do not match")

	// ErrInvalidComponentType means an unknown greyscale component was requested.
	ErrInvalidComponentType = errors.New("invalid component type")

	// ErrInvalidDimensions means a grid was requested with a non-positive size.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrInvalidKernel means a convolution kernel is not square with an odd side.
	ErrInvalidKernel = errors.New("invalid convolution kernel")

	// ErrInvalidArgument means a caller supplied a malformed request, such as a
	// missing name or an unparsable parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCodecIO means decoding, encoding or the file system failed.
	ErrCodecIO = errors.New("codec i/o failure")
)

// Class groups errors by what the caller should do about them.
type Class int

const (
	// Unknown is any error not produced by this package.
	Unknown Class = iota
	// NotFound means the operation does not apply: an image is missing.
	NotFound
	// Malformed means the request or its input data is invalid.
	Malformed
	// IOFailure means storage or codec failure.
	IOFailure
)

// String returns a short lowercase name for the class.
func (c Class) String() string {
	switch c {
	case NotFound:
		return "not found"
	case Malformed:
		return "malformed"
	case IOFailure:
		return "i/o failure"
	default:
		return "unknown"
	}
}

// Classify reports the Class of err. A nil error is Unknown.
func Classify(err error) Class {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, ErrImageNotFound):
		return NotFound
	case errors.Is(err, ErrInvalidHeader),
		errors.Is(err, ErrDimensionMismatch),
		errors.Is(err, ErrInvalidComponentType),
		errors.Is(err, ErrInvalidDimensions),
		errors.Is(err, ErrInvalidKernel),
		errors.Is(err, ErrInvalidArgument):
		return Malformed
	case errors.Is(err, ErrCodecIO):
		return IOFailure
	default:
		return Unknown
	}
}
