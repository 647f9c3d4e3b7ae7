package chunk

import (
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Gamma is the image gamma chunk: the gamma value times 100000 as a
// 32-bit integer. Singleton; must precede the palette and image data.
type Gamma struct {
	base

	// Value is gamma x 100000.
	Value uint32
}

// NewGamma creates a gamma chunk bound to the given set.
func NewGamma(set *Set) *Gamma {
	return &Gamma{base: base{name: TypeGamma, set: set}}
}

func (g *Gamma) Sequence() int {
	return SeqGamma
}

// Decode reads the 4-byte gamma value. Appearing after the palette or
// image data is fatal in strict mode only.
func (g *Gamma) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := g.set.First(TypeHeader); !ok {
		return fmt.Errorf("gamma before header: %w", ErrMissingDependency)
	}
	if _, ok := g.set.First(TypeGamma); ok {
		return fmt.Errorf("second gamma: %w", ErrDuplicateChunk)
	}
	if length != 4 {
		return fmt.Errorf("gamma body is %d bytes, want 4: %w", length, ErrMalformedLength)
	}
	if strict {
		if _, ok := g.set.First(TypePalette); ok {
			return fmt.Errorf("gamma after palette: %w", ErrChunkOrder)
		}
		if _, ok := g.set.First(TypeData); ok {
			return fmt.Errorf("gamma after image data: %w", ErrChunkOrder)
		}
	}

	v, err := cur.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading gamma: %w", err)
	}
	g.Value = v
	return nil
}

func (g *Gamma) Encode(cur *binary.Cursor) error {
	cur.WriteUint32(g.Value)
	return nil
}

// SRGB is the standard color space chunk: a single rendering intent
// byte. Singleton.
type SRGB struct {
	base

	// Intent is the rendering intent, 0-3.
	Intent uint8
}

// NewSRGB creates an sRGB chunk bound to the given set.
func NewSRGB(set *Set) *SRGB {
	return &SRGB{base: base{name: TypeSRGB, set: set}}
}

func (s *SRGB) Sequence() int {
	return SeqSRGB
}

// Decode reads the rendering intent. An intent above 3 is fatal in
// strict mode and kept as-is otherwise.
func (s *SRGB) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := s.set.First(TypeHeader); !ok {
		return fmt.Errorf("sRGB before header: %w", ErrMissingDependency)
	}
	if _, ok := s.set.First(TypeSRGB); ok {
		return fmt.Errorf("second sRGB: %w", ErrDuplicateChunk)
	}
	if length != 1 {
		return fmt.Errorf("sRGB body is %d bytes, want 1: %w", length, ErrMalformedLength)
	}

	intent, err := cur.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading rendering intent: %w", err)
	}
	if strict && intent > 3 {
		return fmt.Errorf("rendering intent %d: %w", intent, ErrMalformedLength)
	}
	s.Intent = intent
	return nil
}

func (s *SRGB) Encode(cur *binary.Cursor) error {
	cur.WriteUint8(s.Intent)
	return nil
}

// Physical is the physical pixel dimensions chunk. Singleton.
type Physical struct {
	base

	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	Unit           uint8 // 0 unknown, 1 meter
}

// NewPhysical creates a physical dimensions chunk bound to the given set.
func NewPhysical(set *Set) *Physical {
	return &Physical{base: base{name: TypePhysical, set: set}}
}

func (p *Physical) Sequence() int {
	return SeqPhysical
}

// Decode reads the 9-byte body. An unknown unit is fatal in strict mode.
func (p *Physical) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := p.set.First(TypeHeader); !ok {
		return fmt.Errorf("physical dimensions before header: %w", ErrMissingDependency)
	}
	if _, ok := p.set.First(TypePhysical); ok {
		return fmt.Errorf("second physical dimensions: %w", ErrDuplicateChunk)
	}
	if length != 9 {
		return fmt.Errorf("physical dimensions body is %d bytes, want 9: %w", length, ErrMalformedLength)
	}

	x, err := cur.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading x density: %w", err)
	}
	y, err := cur.ReadUint32()
	if err != nil {
		return fmt.Errorf("reading y density: %w", err)
	}
	unit, err := cur.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading unit: %w", err)
	}
	if strict && unit > 1 {
		return fmt.Errorf("unit %d: %w", unit, ErrMalformedLength)
	}

	p.PixelsPerUnitX = x
	p.PixelsPerUnitY = y
	p.Unit = unit
	return nil
}

func (p *Physical) Encode(cur *binary.Cursor) error {
	cur.WriteUint32(p.PixelsPerUnitX)
	cur.WriteUint32(p.PixelsPerUnitY)
	cur.WriteUint8(p.Unit)
	return nil
}

// Background is the background color chunk. Its body length depends on
// the header's color type; the palette form needs a decoded palette.
// Singleton.
type Background struct {
	base

	// Raw holds the color-type specific body: a palette index, a gray
	// sample, or an RGB sample triple.
	Raw []byte
}

// NewBackground creates a background chunk bound to the given set.
func NewBackground(set *Set) *Background {
	return &Background{base: base{name: TypeBackground, set: set}}
}

func (b *Background) Sequence() int {
	return SeqBackground
}

// Decode validates the body length against the header's color type and
// copies it verbatim.
func (b *Background) Decode(cur *binary.Cursor, length int, strict bool) error {
	hdr, ok := b.set.header()
	if !ok {
		return fmt.Errorf("background before header: %w", ErrMissingDependency)
	}
	if _, ok := b.set.First(TypeBackground); ok {
		return fmt.Errorf("second background: %w", ErrDuplicateChunk)
	}

	var want int
	switch hdr.ColorType {
	case ColorIndexed:
		if _, ok := b.set.First(TypePalette); !ok {
			return fmt.Errorf("indexed background without palette: %w", ErrMissingDependency)
		}
		want = 1
	case ColorGrayscale, ColorGrayAlpha:
		want = 2
	default:
		want = 6
	}
	if length != want {
		return fmt.Errorf("background body is %d bytes, want %d for color type %d: %w",
			length, want, hdr.ColorType, ErrMalformedLength)
	}

	raw, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading background: %w", err)
	}
	b.Raw = raw
	return nil
}

func (b *Background) Encode(cur *binary.Cursor) error {
	cur.WriteBytes(b.Raw)
	return nil
}

// Transparency is the transparency chunk. For indexed color it holds one
// alpha byte per palette entry and may not have more entries than the
// palette. Singleton.
type Transparency struct {
	base

	// Raw holds the color-type specific body: per-entry alphas for
	// indexed color, a 2-byte gray sample or a 6-byte RGB sample
	// otherwise.
	Raw []byte
}

// NewTransparency creates a transparency chunk bound to the given set.
func NewTransparency(set *Set) *Transparency {
	return &Transparency{base: base{name: TypeTransparency, set: set}}
}

func (t *Transparency) Sequence() int {
	return SeqTransparency
}

// Decode validates the body against the header's color type: indexed
// color requires a palette and at most one alpha per entry; the alpha
// color types may not carry a transparency chunk at all.
func (t *Transparency) Decode(cur *binary.Cursor, length int, strict bool) error {
	hdr, ok := t.set.header()
	if !ok {
		return fmt.Errorf("transparency before header: %w", ErrMissingDependency)
	}
	if _, ok := t.set.First(TypeTransparency); ok {
		return fmt.Errorf("second transparency: %w", ErrDuplicateChunk)
	}

	switch hdr.ColorType {
	case ColorIndexed:
		pal, ok := t.set.palette()
		if !ok {
			return fmt.Errorf("indexed transparency without palette: %w", ErrMissingDependency)
		}
		if length > pal.ColorCount() {
			return fmt.Errorf("%d alpha entries for %d palette entries: %w",
				length, pal.ColorCount(), ErrMalformedLength)
		}
	case ColorGrayscale:
		if length != 2 {
			return fmt.Errorf("grayscale transparency body is %d bytes, want 2: %w", length, ErrMalformedLength)
		}
	case ColorTruecolor:
		if length != 6 {
			return fmt.Errorf("truecolor transparency body is %d bytes, want 6: %w", length, ErrMalformedLength)
		}
	default:
		return fmt.Errorf("color type %d already has alpha: %w", hdr.ColorType, ErrInvalidForColorType)
	}

	raw, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading transparency: %w", err)
	}
	t.Raw = raw
	return nil
}

func (t *Transparency) Encode(cur *binary.Cursor) error {
	cur.WriteBytes(t.Raw)
	return nil
}
