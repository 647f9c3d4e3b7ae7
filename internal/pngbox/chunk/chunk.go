// Package chunk implements the typed, checksummed records that compose a
// PNG-style container: the chunk type registry, the behavior contract
// shared by every chunk, and the concrete standard and extension types.
package chunk

import (
	stdbinary "encoding/binary"
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Standard chunk type names. The ASCII case of individual characters
// encodes the format's reserved property bits (see Critical, Public,
// SafeToCopy).
const (
	TypeHeader       = "IHDR"
	TypePalette      = "PLTE"
	TypeData         = "IDAT"
	TypeEnd          = "IEND"
	TypeGamma        = "gAMA"
	TypeSRGB         = "sRGB"
	TypePhysical     = "pHYs"
	TypeBackground   = "bKGD"
	TypeTransparency = "tRNS"
	TypeHistogram    = "hIST"
	TypeText         = "tEXt"
	TypeTime         = "tIME"

	// TypeMetadata is the vendor extension chunk carrying compressed
	// structured metadata. Ancillary, private, safe to copy.
	TypeMetadata = "meTa"
)

// Write-order sequence numbers. The container encoder stable-sorts
// chunks by these before writing: 0 for the header class, mid range for
// data and metadata, 1000 for the terminal chunk. Unregistered types
// default to SeqDefault.
const (
	SeqHeader       = 0
	SeqGamma        = 200
	SeqSRGB         = 210
	SeqPhysical     = 220
	SeqPalette      = 250
	SeqTransparency = 260
	SeqHistogram    = 270
	SeqBackground   = 280
	SeqData         = 500
	SeqMetadata     = 650
	SeqDefault      = 750
	SeqText         = 760
	SeqTime         = 800
	SeqEnd          = 1000
)

// Chunk is the behavior shared by every chunk in a container. A chunk is
// bound to exactly one registered type at construction; the property-bit
// predicates are pure functions of the 4-character name and hold for
// unknown types too.
type Chunk interface {
	// Name returns the 4-character type name.
	Name() string

	// ID returns the big-endian integer view of the 4 ASCII name bytes.
	ID() uint32

	// Sequence returns the write-order priority.
	Sequence() int

	// Use reports whether this chunk should be emitted at all. Types with
	// optional state opt out when empty.
	Use() bool

	// Decode consumes exactly length bytes of body from the cursor and
	// populates type-specific state, consulting already-decoded sibling
	// chunks for ordering and dependency rules. Strict mode tightens
	// which deviations are fatal; each type documents its own boundary.
	Decode(cur *binary.Cursor, length int, strict bool) error

	// Encode emits this chunk's body onto the cursor. The outer
	// length/type/checksum framing belongs to the container walk.
	Encode(cur *binary.Cursor) error

	IsCritical() bool
	IsAncillary() bool
	IsPublic() bool
	IsPrivate() bool
	IsSafe() bool
	IsUnsafe() bool
}

// Critical reports whether the type name marks a critical chunk: an
// uppercase first character. Unknown critical chunks abort decoding.
func Critical(name string) bool {
	return len(name) > 0 && name[0]&0x20 == 0
}

// Public reports whether the type name marks a registered standard type
// (uppercase second character) rather than a private vendor type.
func Public(name string) bool {
	return len(name) > 1 && name[1]&0x20 == 0
}

// SafeToCopy reports whether an editor that does not understand the chunk
// may still forward it unmodified: a lowercase fourth character.
func SafeToCopy(name string) bool {
	return len(name) > 3 && name[3]&0x20 != 0
}

// TypeID returns the big-endian uint32 encoding of a 4-character type name.
func TypeID(name string) uint32 {
	var b [4]byte
	copy(b[:], name)
	return stdbinary.BigEndian.Uint32(b[:])
}

// base carries the identity and sibling access every chunk shares.
// Concrete types embed it and override Sequence, Decode and Encode.
type base struct {
	name string
	set  *Set // read-only view of the owning collection
}

func (b *base) Name() string {
	return b.name
}

func (b *base) ID() uint32 {
	return TypeID(b.name)
}

func (b *base) Sequence() int {
	return SeqDefault
}

func (b *base) Use() bool {
	return true
}

// Decode is the fallback for unbound types: a critical chunk that nobody
// understands is fatal, an ancillary one is skipped with no state.
func (b *base) Decode(cur *binary.Cursor, length int, strict bool) error {
	if b.IsCritical() {
		return fmt.Errorf("%q: %w", b.name, ErrUnknownCriticalChunk)
	}
	return cur.Skip(length)
}

// Encode fails unless the concrete type overrides it.
func (b *base) Encode(cur *binary.Cursor) error {
	return fmt.Errorf("%q: %w", b.name, ErrUnimplementedEncode)
}

func (b *base) IsCritical() bool  { return Critical(b.name) }
func (b *base) IsAncillary() bool { return !Critical(b.name) }
func (b *base) IsPublic() bool    { return Public(b.name) }
func (b *base) IsPrivate() bool   { return !Public(b.name) }
func (b *base) IsSafe() bool      { return SafeToCopy(b.name) }
func (b *base) IsUnsafe() bool    { return !SafeToCopy(b.name) }

// Unknown creates a chunk for an unregistered type name. It carries no
// state and behaves per the base contract.
func Unknown(name string, set *Set) Chunk {
	return &base{name: name, set: set}
}
