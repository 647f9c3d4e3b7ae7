package chunk

import (
	stdbinary "encoding/binary"
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Histogram is the palette usage histogram chunk: one 16-bit big-endian
// frequency counter per palette entry. Singleton; meaningless without a
// palette to index into. An empty histogram omits itself from output.
type Histogram struct {
	base

	freq []byte // 2 bytes per palette index
}

// NewHistogram creates an empty histogram chunk bound to the given set.
func NewHistogram(set *Set) *Histogram {
	return &Histogram{base: base{name: TypeHistogram, set: set}}
}

func (h *Histogram) Sequence() int {
	return SeqHistogram
}

// Use reports false when no frequencies have been set, so an empty
// histogram drops out of the encoded container.
func (h *Histogram) Use() bool {
	return len(h.freq) > 0
}

// Decode copies the body verbatim as the frequency buffer. The length is
// not cross-checked against the palette here; validation is deferred to
// the read accessors, which are total over the index space.
func (h *Histogram) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := h.set.First(TypeHeader); !ok {
		return fmt.Errorf("histogram before header: %w", ErrMissingDependency)
	}
	if _, ok := h.set.First(TypeHistogram); ok {
		return fmt.Errorf("second histogram: %w", ErrDuplicateChunk)
	}

	freq, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading frequencies: %w", err)
	}
	h.freq = freq
	return nil
}

// Encode emits the frequency buffer verbatim, or nothing when empty.
func (h *Histogram) Encode(cur *binary.Cursor) error {
	if len(h.freq) == 0 {
		return nil
	}
	cur.WriteBytes(h.freq)
	return nil
}

// EntryCount returns the number of frequency counters.
func (h *Histogram) EntryCount() int {
	return len(h.freq) / 2
}

// GetFrequency returns the counter at index, or 0 for any index outside
// the buffer. Histogram lookups never fail.
func (h *Histogram) GetFrequency(index int) uint16 {
	if index < 0 || index*2+2 > len(h.freq) {
		return 0
	}
	return stdbinary.BigEndian.Uint16(h.freq[index*2:])
}

// SetFrequency writes the counter at index. If the buffer is missing or
// its entry count no longer matches the palette's color count, a
// right-sized buffer replaces it first, preserving the values that still
// fit.
func (h *Histogram) SetFrequency(index int, value uint16) error {
	pal, ok := h.set.palette()
	if !ok {
		return fmt.Errorf("histogram without palette: %w", ErrMissingDependency)
	}

	if n := pal.ColorCount(); h.EntryCount() != n {
		buf := make([]byte, n*2)
		copy(buf, h.freq)
		h.freq = buf
	}
	if index < 0 || index*2+2 > len(h.freq) {
		return fmt.Errorf("histogram index %d of %d: %w", index, h.EntryCount(), ErrIndexOutOfRange)
	}
	stdbinary.BigEndian.PutUint16(h.freq[index*2:], value)
	return nil
}

// SetFrequencies replaces the whole buffer with the given counters.
func (h *Histogram) SetFrequencies(values []uint16) error {
	if _, ok := h.set.palette(); !ok {
		return fmt.Errorf("histogram without palette: %w", ErrMissingDependency)
	}

	buf := make([]byte, len(values)*2)
	for i, v := range values {
		stdbinary.BigEndian.PutUint16(buf[i*2:], v)
	}
	h.freq = buf
	return nil
}
