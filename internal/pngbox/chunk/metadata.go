package chunk

import (
	"encoding/json"
	"fmt"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/codec"
)

// Metadata is the vendor extension chunk carrying structured metadata:
// a 4-character data-type tag sub-typing the content, a major/minor
// version pair, and an independently compressed JSON body. Singleton.
type Metadata struct {
	base

	dataType string
	major    uint8
	minor    uint8

	// Content is the parsed JSON value. Opaque to the chunk layer; the
	// data-type tag tells consumers how to interpret it.
	Content interface{}
}

// NewMetadata creates an empty metadata chunk bound to the given set.
// The data-type tag defaults to "none" until set.
func NewMetadata(set *Set) *Metadata {
	return &Metadata{base: base{name: TypeMetadata, set: set}, dataType: "none"}
}

func (m *Metadata) Sequence() int {
	return SeqMetadata
}

// Decode reads the tag and version bytes, then decompresses and parses
// the remaining body as JSON. Decompression and parse failures are
// always fatal; there is no lenient recovery for a payload nobody can
// read.
func (m *Metadata) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := m.set.First(TypeHeader); !ok {
		return fmt.Errorf("metadata before header: %w", ErrMissingDependency)
	}
	if _, ok := m.set.First(TypeMetadata); ok {
		return fmt.Errorf("second metadata chunk: %w", ErrDuplicateChunk)
	}
	if length < 6 {
		return fmt.Errorf("metadata body is %d bytes, want at least 6: %w", length, ErrMalformedLength)
	}

	tag, err := cur.ReadString(4)
	if err != nil {
		return fmt.Errorf("reading data type: %w", err)
	}
	major, err := cur.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading major version: %w", err)
	}
	minor, err := cur.ReadUint8()
	if err != nil {
		return fmt.Errorf("reading minor version: %w", err)
	}
	blob, err := cur.ReadBytes(length - 6)
	if err != nil {
		return fmt.Errorf("reading compressed content: %w", err)
	}

	raw, err := codec.Decompress(blob)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var content interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return fmt.Errorf("%w: parsing content: %v", ErrMalformedPayload, err)
	}

	m.dataType = tag
	m.major = major
	m.minor = minor
	m.Content = content
	return nil
}

// Encode serializes the content to JSON, compresses it, and emits the
// tag, the version bytes and the compressed blob. Unset content encodes
// as an empty object.
func (m *Metadata) Encode(cur *binary.Cursor) error {
	content := m.Content
	if content == nil {
		content = map[string]interface{}{}
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("serializing content: %w", err)
	}
	blob, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("compressing content: %w", err)
	}

	cur.WriteString(m.dataType)
	cur.WriteUint8(m.major)
	cur.WriteUint8(m.minor)
	cur.WriteBytes(blob)
	return nil
}

// DataType returns the 4-character sub-type tag.
func (m *Metadata) DataType() string {
	return m.dataType
}

// SetDataType sets the sub-type tag, which must be exactly 4 characters.
func (m *Metadata) SetDataType(tag string) error {
	if len(tag) != 4 {
		return fmt.Errorf("tag %q: %w", tag, ErrInvalidTag)
	}
	m.dataType = tag
	return nil
}

// Version returns the major and minor version.
func (m *Metadata) Version() (major, minor int) {
	return int(m.major), int(m.minor)
}

// SetVersion sets the major and minor version, each 0-255.
func (m *Metadata) SetVersion(major, minor int) error {
	if major < 0 || major > 255 {
		return fmt.Errorf("major %d: %w", major, ErrVersionOutOfRange)
	}
	if minor < 0 || minor > 255 {
		return fmt.Errorf("minor %d: %w", minor, ErrVersionOutOfRange)
	}
	m.major = uint8(major)
	m.minor = uint8(minor)
	return nil
}
