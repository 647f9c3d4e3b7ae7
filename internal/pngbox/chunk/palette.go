package chunk

import (
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is the color palette chunk: an ordered sequence of RGB triples
// backed by a fixed buffer of 3 bytes per entry. Singleton; only valid
// for color types that declare palette support.
type Palette struct {
	base

	colors []byte
	stride int // output bytes per pixel for ApplyToImage
}

// NewPalette creates an empty palette chunk bound to the given set.
func NewPalette(set *Set) *Palette {
	return &Palette{base: base{name: TypePalette, set: set}, stride: 3}
}

func (p *Palette) Sequence() int {
	return SeqPalette
}

// Decode validates the palette against the previously decoded header and
// copies the raw body into an owned buffer. All checks here are
// structural or semantic requirements of the format and apply in both
// strict and lenient mode.
func (p *Palette) Decode(cur *binary.Cursor, length int, strict bool) error {
	hdr, ok := p.set.header()
	if !ok {
		return fmt.Errorf("palette before header: %w", ErrMissingDependency)
	}
	if _, ok := p.set.First(TypePalette); ok {
		return fmt.Errorf("second palette: %w", ErrDuplicateChunk)
	}
	if length%3 != 0 {
		return fmt.Errorf("palette body is %d bytes, not a multiple of 3: %w", length, ErrMalformedLength)
	}
	if !hdr.PalettePermitted() {
		return fmt.Errorf("color type %d: %w", hdr.ColorType, ErrInvalidForColorType)
	}
	if 1<<hdr.BitDepth > length/3 {
		return fmt.Errorf("%d entries for bit depth %d: %w", length/3, hdr.BitDepth, ErrPaletteTooSmall)
	}

	colors, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading palette entries: %w", err)
	}
	p.colors = colors
	p.stride = hdr.PixelBytes()
	return nil
}

// Encode emits the raw 3xN entry buffer verbatim.
func (p *Palette) Encode(cur *binary.Cursor) error {
	cur.WriteBytes(p.colors)
	return nil
}

// SetColors replaces the palette entries.
func (p *Palette) SetColors(colors []RGB) {
	buf := make([]byte, 3*len(colors))
	for i, c := range colors {
		buf[i*3] = c.R
		buf[i*3+1] = c.G
		buf[i*3+2] = c.B
	}
	p.colors = buf
}

// ColorCount returns the number of palette entries.
func (p *Palette) ColorCount() int {
	return len(p.colors) / 3
}

// ColorAt returns the palette entry at index.
func (p *Palette) ColorAt(index int) (RGB, error) {
	if index < 0 || index*3+3 > len(p.colors) {
		return RGB{}, fmt.Errorf("palette index %d of %d: %w", index, p.ColorCount(), ErrIndexOutOfRange)
	}
	return RGB{p.colors[index*3], p.colors[index*3+1], p.colors[index*3+2]}, nil
}

// ApplyToImage expands palette indexes into RGB bytes: for each index
// byte starting at indexOffset, the matching triple is written into out
// at outOffset plus the per-pixel stride declared by the header. This is
// the palette-expansion step consumed by pixel decoding.
func (p *Palette) ApplyToImage(indexes []byte, indexOffset int, out []byte, outOffset int) error {
	if indexOffset < 0 || indexOffset > len(indexes) {
		return fmt.Errorf("index offset %d of %d: %w", indexOffset, len(indexes), ErrIndexOutOfRange)
	}
	for i, idx := range indexes[indexOffset:] {
		pos := outOffset + i*p.stride
		if pos+3 > len(out) {
			return fmt.Errorf("output offset %d of %d: %w", pos, len(out), ErrIndexOutOfRange)
		}
		c, err := p.ColorAt(int(idx))
		if err != nil {
			return err
		}
		out[pos] = c.R
		out[pos+1] = c.G
		out[pos+2] = c.B
	}
	return nil
}
