package chunk

import (
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Color types defined by the container format.
const (
	ColorGrayscale      = 0
	ColorTruecolor      = 2
	ColorIndexed        = 3
	ColorGrayAlpha      = 4
	ColorTruecolorAlpha = 6
)

// Header is the image header chunk. It is the dependency root: every
// other type's decode validation checks for its presence. Singleton,
// always written first (sequence 0).
type Header struct {
	base

	Width       int
	Height      int
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// NewHeader creates an empty header chunk bound to the given set.
func NewHeader(set *Set) *Header {
	return &Header{base: base{name: TypeHeader, set: set}}
}

func (h *Header) Sequence() int {
	return SeqHeader
}

// Decode reads the fixed 13-byte header body. The 13-byte length, a
// positive size, and known compression/filter/interlace methods are
// always enforced; the bit depth/color type combination is rejected only
// in strict mode.
func (h *Header) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := h.set.First(TypeHeader); ok {
		return fmt.Errorf("second header: %w", ErrDuplicateChunk)
	}
	if length != 13 {
		return fmt.Errorf("header body is %d bytes, want 13: %w", length, ErrMalformedLength)
	}

	w, err := cur.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading width: %w", err)
	}
	hgt, err := cur.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading height: %w", err)
	}
	fields, err := cur.ReadBytes(5)
	if err != nil {
		return fmt.Errorf("reading header fields: %w", err)
	}

	h.Width = int(w)
	h.Height = int(hgt)
	h.BitDepth = fields[0]
	h.ColorType = fields[1]
	h.Compression = fields[2]
	h.Filter = fields[3]
	h.Interlace = fields[4]

	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("non-positive dimensions %dx%d: %w", h.Width, h.Height, ErrMalformedLength)
	}
	if h.Compression != 0 {
		return fmt.Errorf("unknown compression method %d: %w", h.Compression, ErrMalformedLength)
	}
	if h.Filter != 0 {
		return fmt.Errorf("unknown filter method %d: %w", h.Filter, ErrMalformedLength)
	}
	if h.Interlace > 1 {
		return fmt.Errorf("unknown interlace method %d: %w", h.Interlace, ErrMalformedLength)
	}
	if strict && !validDepth(h.ColorType, h.BitDepth) {
		return fmt.Errorf("bit depth %d invalid for color type %d: %w", h.BitDepth, h.ColorType, ErrMalformedLength)
	}
	return nil
}

// Encode writes the 13-byte header body.
func (h *Header) Encode(cur *binary.Cursor) error {
	cur.WriteUint32(uint32(h.Width))
	cur.WriteUint32(uint32(h.Height))
	cur.WriteUint8(h.BitDepth)
	cur.WriteUint8(h.ColorType)
	cur.WriteUint8(h.Compression)
	cur.WriteUint8(h.Filter)
	cur.WriteUint8(h.Interlace)
	return nil
}

// PalettePermitted reports whether this header's color type allows a
// palette chunk. Indexed color requires one; the truecolor types may
// carry a suggested palette.
func (h *Header) PalettePermitted() bool {
	switch h.ColorType {
	case ColorTruecolor, ColorIndexed, ColorTruecolorAlpha:
		return true
	}
	return false
}

// PixelBytes returns the per-pixel byte width of the decoded image.
// Indexed color counts as 3 bytes per pixel, the width after palette
// expansion.
func (h *Header) PixelBytes() int {
	channels := 1
	switch h.ColorType {
	case ColorTruecolor, ColorIndexed:
		channels = 3
	case ColorGrayAlpha:
		channels = 2
	case ColorTruecolorAlpha:
		channels = 4
	}
	if h.ColorType != ColorIndexed && h.BitDepth == 16 {
		return channels * 2
	}
	return channels
}

// validDepth checks the legal bit depth/color type combinations.
func validDepth(colorType, depth uint8) bool {
	switch colorType {
	case ColorGrayscale:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8 || depth == 16
	case ColorIndexed:
		return depth == 1 || depth == 2 || depth == 4 || depth == 8
	case ColorTruecolor, ColorGrayAlpha, ColorTruecolorAlpha:
		return depth == 8 || depth == 16
	}
	return false
}
