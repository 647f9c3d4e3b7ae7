// Package container implements the outer walk of a PNG-style container:
// the file signature, the length/type/body/checksum record framing, and
// the dispatch of each record body to its chunk type. Decode is a strict
// left-to-right walk of the stream; encode writes chunks stable-sorted
// by their sequence numbers.
package container

import (
	"errors"
	"fmt"
	"os"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/chunk"
	"pngbox/internal/pngbox/logger"
)

// Signature is the fixed 8-byte file signature.
const Signature = "\x89PNG\r\n\x1a\n"

// Container-level decode failures.
var (
	ErrBadSignature     = errors.New("bad container signature")
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")
)

// Options configures a container.
type Options struct {
	// Strict tightens which decode deviations are fatal. Checksum
	// mismatches, trailing data, a missing end marker and per-type
	// strict rules become errors instead of logged warnings.
	Strict bool

	// Table is the chunk type registry. Nil means a fresh default table.
	Table *chunk.Table

	// Logger receives lenient-mode warnings. Nil means the package
	// default logger.
	Logger logger.Logger
}

// Container is one decoded or under-construction chunk container.
type Container struct {
	table  *chunk.Table
	chunks *chunk.Set
	strict bool
	log    logger.Logger
}

// New creates an empty container for building.
func New(opts Options) *Container {
	if opts.Table == nil {
		opts.Table = chunk.NewTable()
	}
	if opts.Logger == nil {
		opts.Logger = logger.DefaultLogger
	}
	return &Container{
		table:  opts.Table,
		chunks: chunk.NewSet(),
		strict: opts.Strict,
		log:    opts.Logger,
	}
}

// Chunks returns the container's chunk set.
func (c *Container) Chunks() *chunk.Set {
	return c.chunks
}

// Add binds a new chunk of a registered type, appends it to the
// container and returns it for type-specific population.
func (c *Container) Add(name string) (chunk.Chunk, error) {
	ch, err := c.table.Bind(name, c.chunks)
	if err != nil {
		return nil, err
	}
	c.chunks.Append(ch)
	return ch, nil
}

// Decode parses a full container from data. Any validation failure
// aborts the whole decode; there is no partial result. Unknown ancillary
// chunks are skipped, unknown critical chunks are fatal.
func Decode(data []byte, opts Options) (*Container, error) {
	c := New(opts)
	cur := binary.NewCursor(data)

	sig, err := cur.ReadString(len(Signature))
	if err != nil || sig != Signature {
		return nil, fmt.Errorf("decoding container: %w", ErrBadSignature)
	}

	for cur.Remaining() > 0 {
		name, body, sum, err := readRecord(cur)
		if err != nil {
			return nil, fmt.Errorf("decoding container: %w", err)
		}

		if !binary.ValidateChecksum(sum, []byte(name), body) {
			if c.strict {
				return nil, fmt.Errorf("chunk %q: %w", name, ErrChecksumMismatch)
			}
			c.log.Log("chunk %q: checksum mismatch, continuing", name)
		}

		if _, ok := c.table.Lookup(name); !ok {
			if chunk.Critical(name) {
				return nil, fmt.Errorf("chunk %q: %w", name, chunk.ErrUnknownCriticalChunk)
			}
			c.log.Log("skipping unknown ancillary chunk %q", name)
			continue
		}

		ch := c.table.New(name, c.chunks)
		if err := ch.Decode(binary.NewCursor(body), len(body), c.strict); err != nil {
			return nil, fmt.Errorf("decoding chunk %q: %w", name, err)
		}
		c.chunks.Append(ch)

		if name == chunk.TypeEnd {
			if cur.Remaining() > 0 {
				if c.strict {
					return nil, fmt.Errorf("%d bytes after end marker: %w", cur.Remaining(), chunk.ErrChunkOrder)
				}
				c.log.Log("ignoring %d bytes after end marker", cur.Remaining())
			}
			break
		}
	}

	if _, ok := c.chunks.First(chunk.TypeHeader); !ok {
		return nil, fmt.Errorf("container has no header: %w", chunk.ErrMissingDependency)
	}
	if _, ok := c.chunks.First(chunk.TypeEnd); !ok {
		if c.strict {
			return nil, fmt.Errorf("container has no end marker: %w", chunk.ErrMissingDependency)
		}
		c.log.Log("container has no end marker")
	}
	return c, nil
}

// readRecord reads one framed record: body length, type tag, body and
// checksum.
func readRecord(cur *binary.Cursor) (name string, body []byte, sum uint32, err error) {
	length, err := cur.ReadUint32()
	if err != nil {
		return "", nil, 0, fmt.Errorf("reading record length: %w", err)
	}
	name, err = cur.ReadString(4)
	if err != nil {
		return "", nil, 0, fmt.Errorf("reading record type: %w", err)
	}
	body, err = cur.ReadBytes(int(length))
	if err != nil {
		return "", nil, 0, fmt.Errorf("reading %q body: %w", name, err)
	}
	sum, err = cur.ReadUint32()
	if err != nil {
		return "", nil, 0, fmt.Errorf("reading %q checksum: %w", name, err)
	}
	return name, body, sum, nil
}

// Encode emits the signature and every chunk in sequence order. Chunks
// whose Use reports false are skipped. Ties in sequence keep insertion
// order.
func (c *Container) Encode() ([]byte, error) {
	out := binary.NewWriter()
	out.WriteString(Signature)

	for _, ch := range c.chunks.Ordered() {
		if !ch.Use() {
			continue
		}

		body := binary.NewWriter()
		if err := ch.Encode(body); err != nil {
			return nil, fmt.Errorf("encoding chunk %q: %w", ch.Name(), err)
		}

		out.WriteUint32(uint32(body.Len()))
		out.WriteString(ch.Name())
		out.WriteBytes(body.Bytes())
		out.WriteUint32(binary.Checksum([]byte(ch.Name()), body.Bytes()))
	}
	return out.Bytes(), nil
}

// Open reads and decodes a container file.
func Open(path string, opts Options) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading container file: %w", err)
	}
	c, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return c, nil
}

// Save encodes the container and writes it to path.
func (c *Container) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("encoding container: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing container file: %w", err)
	}
	return nil
}
