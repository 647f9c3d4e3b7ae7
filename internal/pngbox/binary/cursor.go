package binary

import (
	"encoding/binary"
	"fmt"
)

// Cursor is a sequential reader/writer over an in-memory byte buffer.
// All multi-byte values are big-endian (network order), matching the
// container format. Reads are bounds-checked and fail instead of
// returning undefined data; writes append at the current position.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewWriter creates an empty cursor for encoding.
func NewWriter() *Cursor {
	return &Cursor{}
}

// Pos returns the current position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of bytes between the position and the end.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// need checks that n more bytes can be read.
func (c *Cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return fmt.Errorf("reading %d bytes at offset %d of %d: %w", n, c.pos, len(c.buf), ErrShortBuffer)
	}
	return nil
}

// ReadUint8 reads one byte from the current position.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadUint16 reads a big-endian uint16 from the current position.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadUint32 reads a big-endian uint32 from the current position.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadString reads n ASCII bytes as a string.
func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBytes reads n bytes from the current position. The returned slice
// is a copy owned by the caller.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, c.buf[c.pos:])
	c.pos += n
	return b, nil
}

// Skip advances the position by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// WriteUint8 writes one byte at the current position.
func (c *Cursor) WriteUint8(v uint8) {
	c.buf = append(c.buf[:c.pos], v)
	c.pos = len(c.buf)
}

// WriteUint16 writes a big-endian uint16 at the current position.
func (c *Cursor) WriteUint16(v uint16) {
	c.buf = binary.BigEndian.AppendUint16(c.buf[:c.pos], v)
	c.pos = len(c.buf)
}

// WriteUint32 writes a big-endian uint32 at the current position.
func (c *Cursor) WriteUint32(v uint32) {
	c.buf = binary.BigEndian.AppendUint32(c.buf[:c.pos], v)
	c.pos = len(c.buf)
}

// WriteString writes the ASCII bytes of s at the current position.
func (c *Cursor) WriteString(s string) {
	c.buf = append(c.buf[:c.pos], s...)
	c.pos = len(c.buf)
}

// WriteBytes writes b at the current position.
func (c *Cursor) WriteBytes(b []byte) {
	c.buf = append(c.buf[:c.pos], b...)
	c.pos = len(c.buf)
}
