package chunk

import "fmt"

// Constructor creates a fresh chunk of one type, bound to the sibling
// view it will consult during decode.
type Constructor func(set *Set) Chunk

// Table is the chunk type registry: one constructor per 4-character type
// name. A Table is an explicit value passed to container decode/encode
// rather than ambient process state; it is safe for concurrent lookups
// once registration is complete, but callers must not register new types
// concurrently with in-flight decodes.
type Table struct {
	types map[string]Constructor
}

// NewTable creates a table populated by the two fixed registration
// passes: the standard chunk types, then the vendor extension types.
func NewTable() *Table {
	t := &Table{types: make(map[string]Constructor)}
	t.registerStandard()
	t.registerExtensions()
	return t
}

// Register installs or overwrites the constructor for a type name.
func (t *Table) Register(name string, ctor Constructor) {
	t.types[name] = ctor
}

// Lookup returns the constructor for a type name.
func (t *Table) Lookup(name string) (Constructor, bool) {
	ctor, ok := t.types[name]
	return ctor, ok
}

// Bind creates a chunk of a registered type, bound to the given sibling
// view. Binding an unregistered name fails; the container decode path
// uses New instead, which falls back to the base contract for unknown
// ancillary chunks.
func (t *Table) Bind(name string, set *Set) (Chunk, error) {
	ctor, ok := t.types[name]
	if !ok {
		return nil, fmt.Errorf("binding %q: %w", name, ErrUnknownChunkType)
	}
	return ctor(set), nil
}

// New creates a chunk for any type name, registered or not.
func (t *Table) New(name string, set *Set) Chunk {
	if ctor, ok := t.types[name]; ok {
		return ctor(set)
	}
	return Unknown(name, set)
}

// registerStandard installs the officially defined container chunk types.
func (t *Table) registerStandard() {
	t.Register(TypeHeader, func(s *Set) Chunk { return NewHeader(s) })
	t.Register(TypePalette, func(s *Set) Chunk { return NewPalette(s) })
	t.Register(TypeData, func(s *Set) Chunk { return NewData(s) })
	t.Register(TypeEnd, func(s *Set) Chunk { return NewEnd(s) })
	t.Register(TypeGamma, func(s *Set) Chunk { return NewGamma(s) })
	t.Register(TypeProfile, func(s *Set) Chunk { return NewProfile(s) })
	t.Register(TypeSRGB, func(s *Set) Chunk { return NewSRGB(s) })
	t.Register(TypePhysical, func(s *Set) Chunk { return NewPhysical(s) })
	t.Register(TypeBackground, func(s *Set) Chunk { return NewBackground(s) })
	t.Register(TypeTransparency, func(s *Set) Chunk { return NewTransparency(s) })
	t.Register(TypeHistogram, func(s *Set) Chunk { return NewHistogram(s) })
	t.Register(TypeText, func(s *Set) Chunk { return NewText(s) })
	t.Register(TypeTime, func(s *Set) Chunk { return NewTime(s) })
}

// registerExtensions installs vendor extension chunk types.
func (t *Table) registerExtensions() {
	t.Register(TypeMetadata, func(s *Set) Chunk { return NewMetadata(s) })
}
