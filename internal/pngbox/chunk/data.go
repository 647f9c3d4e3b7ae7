package chunk

import (
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Data is one image data chunk. The compressed pixel stream is carried
// verbatim; pixel decoding belongs to the image layer, not the container.
// A container may hold many data chunks, which must be consecutive in
// the stream.
type Data struct {
	base

	// Segment is this chunk's slice of the compressed pixel stream.
	Segment []byte
}

// NewData creates an empty data chunk bound to the given set.
func NewData(set *Set) *Data {
	return &Data{base: base{name: TypeData, set: set}}
}

func (d *Data) Sequence() int {
	return SeqData
}

// Decode copies the body verbatim. Strict mode additionally enforces
// that data chunks are consecutive: once one has been decoded, the next
// chunk in the stream must be another data chunk or nothing.
func (d *Data) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := d.set.First(TypeHeader); !ok {
		return fmt.Errorf("image data before header: %w", ErrMissingDependency)
	}
	if hdr, ok := d.set.header(); ok && hdr.ColorType == ColorIndexed {
		if _, ok := d.set.First(TypePalette); !ok {
			return fmt.Errorf("indexed image data without palette: %w", ErrMissingDependency)
		}
	}
	if strict {
		if _, ok := d.set.First(TypeData); ok {
			if last, _ := d.set.Last(); last.Name() != TypeData {
				return fmt.Errorf("image data interrupted by %q: %w", last.Name(), ErrChunkOrder)
			}
		}
	}

	seg, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading image data: %w", err)
	}
	d.Segment = seg
	return nil
}

// Encode emits the segment verbatim.
func (d *Data) Encode(cur *binary.Cursor) error {
	cur.WriteBytes(d.Segment)
	return nil
}

// JoinData concatenates every data chunk's segment in stream order,
// yielding the full compressed pixel stream.
func JoinData(set *Set) []byte {
	var out []byte
	for _, c := range set.All(TypeData) {
		if d, ok := c.(*Data); ok {
			out = append(out, d.Segment...)
		}
	}
	return out
}

// End is the terminal chunk. Zero-length body, highest sequence number
// so it is always written last. Singleton.
type End struct {
	base
}

// NewEnd creates an end chunk bound to the given set.
func NewEnd(set *Set) *End {
	return &End{base: base{name: TypeEnd, set: set}}
}

func (e *End) Sequence() int {
	return SeqEnd
}

// Decode accepts only an empty body.
func (e *End) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := e.set.First(TypeEnd); ok {
		return fmt.Errorf("second end marker: %w", ErrDuplicateChunk)
	}
	if length != 0 {
		return fmt.Errorf("end marker body is %d bytes, want 0: %w", length, ErrMalformedLength)
	}
	return nil
}

// Encode emits nothing.
func (e *End) Encode(cur *binary.Cursor) error {
	return nil
}
