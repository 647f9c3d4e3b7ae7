package chunk

import "sort"

// Set is the ordered collection of chunks in one container. Insertion
// order is decode order (or explicit append order) and is preserved; the
// final write order is a separate stable sort by sequence number.
type Set struct {
	chunks []Chunk
}

// NewSet creates an empty chunk set.
func NewSet() *Set {
	return &Set{}
}

// Append adds a chunk at the end of the set.
func (s *Set) Append(c Chunk) {
	s.chunks = append(s.chunks, c)
}

// Len returns the number of chunks in the set.
func (s *Set) Len() int {
	return len(s.chunks)
}

// At returns the chunk at insertion position i.
func (s *Set) At(i int) Chunk {
	return s.chunks[i]
}

// Last returns the most recently appended chunk.
func (s *Set) Last() (Chunk, bool) {
	if len(s.chunks) == 0 {
		return nil, false
	}
	return s.chunks[len(s.chunks)-1], true
}

// First returns the first chunk of the given type name.
func (s *Set) First(name string) (Chunk, bool) {
	for _, c := range s.chunks {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// All returns every chunk of the given type name, in insertion order.
func (s *Set) All(name string) []Chunk {
	var out []Chunk
	for _, c := range s.chunks {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Ordered returns the chunks sorted by sequence number for encoding.
// The sort is stable: chunks with equal sequence keep insertion order.
func (s *Set) Ordered() []Chunk {
	out := make([]Chunk, len(s.chunks))
	copy(out, s.chunks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sequence() < out[j].Sequence()
	})
	return out
}

// header returns the decoded header chunk, if any. Most chunk types
// validate against it during decode.
func (s *Set) header() (*Header, bool) {
	c, ok := s.First(TypeHeader)
	if !ok {
		return nil, false
	}
	h, ok := c.(*Header)
	return h, ok
}

// palette returns the decoded palette chunk, if any.
func (s *Set) palette() (*Palette, bool) {
	c, ok := s.First(TypePalette)
	if !ok {
		return nil, false
	}
	p, ok := c.(*Palette)
	return p, ok
}
