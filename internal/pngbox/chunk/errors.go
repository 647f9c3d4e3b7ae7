package chunk

import "errors"

// Decode and accessor failures. Any of these during a container decode
// aborts the whole decode; there is no partial-container result.
var (
	// ErrUnknownChunkType is returned when binding a type name that was
	// never registered.
	ErrUnknownChunkType = errors.New("unknown chunk type")

	// ErrUnknownCriticalChunk is returned when decoding a chunk whose type
	// is unregistered but whose name marks it critical. Unknown critical
	// chunks are never recoverable.
	ErrUnknownCriticalChunk = errors.New("unknown critical chunk")

	// ErrDuplicateChunk is returned when a singleton chunk type appears twice.
	ErrDuplicateChunk = errors.New("duplicate chunk")

	// ErrMissingDependency is returned when a chunk's required predecessor
	// has not been decoded yet.
	ErrMissingDependency = errors.New("missing dependency chunk")

	// ErrMalformedLength is returned when a body length violates the
	// type's structural rule.
	ErrMalformedLength = errors.New("malformed chunk length")

	// ErrInvalidForColorType is returned when a palette appears for a
	// color type that does not permit one.
	ErrInvalidForColorType = errors.New("palette not valid for color type")

	// ErrPaletteTooSmall is returned when the palette has fewer entries
	// than the header's bit depth can index.
	ErrPaletteTooSmall = errors.New("palette too small for bit depth")

	// ErrIndexOutOfRange is returned by accessors given an out-of-bounds index.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidTag is returned when a metadata data-type tag is not
	// exactly 4 characters.
	ErrInvalidTag = errors.New("invalid data-type tag")

	// ErrVersionOutOfRange is returned when a metadata version byte
	// exceeds 255.
	ErrVersionOutOfRange = errors.New("version out of range")

	// ErrMalformedPayload is returned when a compressed payload fails to
	// decompress or parse.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnimplementedEncode is returned when a chunk type without an
	// encode implementation is asked to encode.
	ErrUnimplementedEncode = errors.New("encode not implemented for chunk type")

	// ErrChunkOrder is returned when chunks appear in an order the format
	// forbids.
	ErrChunkOrder = errors.New("chunk out of order")
)
