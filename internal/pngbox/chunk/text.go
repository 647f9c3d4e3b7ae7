package chunk

import (
	"bytes"
	"fmt"

	"pngbox/internal/pngbox/binary"
)

// Text is an uncompressed text chunk: a keyword and a value separated by
// a NUL byte. Repeatable; a container may carry any number.
type Text struct {
	base

	Keyword string
	Value   string
}

// NewText creates a text chunk bound to the given set.
func NewText(set *Set) *Text {
	return &Text{base: base{name: TypeText, set: set}}
}

func (t *Text) Sequence() int {
	return SeqText
}

// Decode splits the body at the first NUL byte. A missing separator or a
// keyword outside 1-79 bytes is fatal in strict mode; lenient mode keeps
// whatever is there.
func (t *Text) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := t.set.First(TypeHeader); !ok {
		return fmt.Errorf("text before header: %w", ErrMissingDependency)
	}

	body, err := cur.ReadBytes(length)
	if err != nil {
		return fmt.Errorf("reading text: %w", err)
	}

	keyword, value, found := bytes.Cut(body, []byte{0})
	if strict {
		if !found {
			return fmt.Errorf("text without keyword separator: %w", ErrMalformedLength)
		}
		if len(keyword) == 0 || len(keyword) > 79 {
			return fmt.Errorf("keyword is %d bytes, want 1-79: %w", len(keyword), ErrMalformedLength)
		}
	}
	t.Keyword = string(keyword)
	t.Value = string(value)
	return nil
}

// Encode emits the keyword, a NUL separator and the value.
func (t *Text) Encode(cur *binary.Cursor) error {
	cur.WriteString(t.Keyword)
	cur.WriteUint8(0)
	cur.WriteString(t.Value)
	return nil
}
