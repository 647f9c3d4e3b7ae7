package chunk

import (
	"bytes"
	"fmt"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/codec"
)

// TypeProfile is the embedded color-management profile chunk.
const TypeProfile = "iCCP"

// SeqProfile orders the profile with the other pre-palette color chunks.
const SeqProfile = 205

// Profile is the color-management profile chunk: a profile name, a
// compression method byte and a compressed profile blob. The profile is
// stored decompressed. Singleton; must precede the palette.
type Profile struct {
	base

	ProfileName string
	Profile     []byte
}

// NewProfile creates a profile chunk bound to the given set.
func NewProfile(set *Set) *Profile {
	return &Profile{base: base{name: TypeProfile, set: set}}
}

func (p *Profile) Sequence() int {
	return SeqProfile
}

// Decode reads the name, checks the compression method and inflates the
// profile. An undecompressable profile is always fatal; appearing after
// the palette is fatal in strict mode only.
func (p *Profile) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := p.set.First(TypeHeader); !ok {
		return fmt.Errorf("profile before header: %w", ErrMissingDependency)
	}
	if _, ok := p.set.First(TypeProfile); ok {
		return fmt.Errorf("second profile: %w", ErrDuplicateChunk)
	}
	if strict {
		if _, ok := p.set.First(TypePalette); ok {
			return fmt.Errorf("profile after palette: %w", ErrChunkOrder)
		}
	}

	body, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading profile: %w", err)
	}

	name, rest, found := bytes.Cut(body, []byte{0})
	if !found || len(rest) < 1 {
		return fmt.Errorf("profile without name separator: %w", ErrMalformedLength)
	}
	if len(name) == 0 || len(name) > 79 {
		return fmt.Errorf("profile name is %d bytes, want 1-79: %w", len(name), ErrMalformedLength)
	}
	if rest[0] != 0 {
		return fmt.Errorf("unknown profile compression method %d: %w", rest[0], ErrMalformedLength)
	}

	profile, err := codec.Decompress(rest[1:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	p.ProfileName = string(name)
	p.Profile = profile
	return nil
}

// Encode emits the name, the compression method and the compressed
// profile.
func (p *Profile) Encode(cur *binary.Cursor) error {
	blob, err := codec.Compress(p.Profile)
	if err != nil {
		return fmt.Errorf("compressing profile: %w", err)
	}
	cur.WriteString(p.ProfileName)
	cur.WriteUint8(0)
	cur.WriteUint8(0)
	cur.WriteBytes(blob)
	return nil
}
