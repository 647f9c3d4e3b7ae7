package binary

import (
	"errors"
	"hash/crc32"
)

// ErrShortBuffer is returned when a read would pass the end of the buffer.
var ErrShortBuffer = errors.New("read past end of buffer")

// Checksum calculates the CRC32 checksum over the given parts in order.
// The container format checksums the type tag followed by the chunk body.
func Checksum(parts ...[]byte) uint32 {
	var crc uint32
	for _, p := range parts {
		crc = crc32.Update(crc, crc32.IEEETable, p)
	}
	return crc
}

// ValidateChecksum validates data against its checksum.
func ValidateChecksum(checksum uint32, parts ...[]byte) bool {
	return Checksum(parts...) == checksum
}
