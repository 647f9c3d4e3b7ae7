package chunk

import (
	"fmt"
	"time"

	"pngbox/internal/pngbox/binary"
)

// Time is the last-modification time chunk: a fixed 7-byte UTC
// timestamp. Singleton.
type Time struct {
	base

	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// NewTime creates a time chunk bound to the given set.
func NewTime(set *Set) *Time {
	return &Time{base: base{name: TypeTime, set: set}}
}

func (t *Time) Sequence() int {
	return SeqTime
}

// Decode reads the 7-byte timestamp. Field ranges are validated in
// strict mode only; lenient mode keeps out-of-range values as stored.
func (t *Time) Decode(cur *binary.Cursor, length int, strict bool) error {
	if _, ok := t.set.First(TypeHeader); !ok {
		return fmt.Errorf("time before header: %w", ErrMissingDependency)
	}
	if _, ok := t.set.First(TypeTime); ok {
		return fmt.Errorf("second time: %w", ErrDuplicateChunk)
	}
	if length != 7 {
		return fmt.Errorf("time body is %d bytes, want 7: %w", length, ErrMalformedLength)
	}

	year, err := cur.ReadUint16()
	if err != nil {
		return fmt.Errorf("reading year: %w", err)
	}
	rest, err := cur.ReadBytes(5)
	if err != nil {
		return fmt.Errorf("reading time fields: %w", err)
	}

	t.Year = year
	t.Month = rest[0]
	t.Day = rest[1]
	t.Hour = rest[2]
	t.Minute = rest[3]
	t.Second = rest[4]

	if strict {
		// Second 60 is allowed for leap seconds.
		if t.Month < 1 || t.Month > 12 || t.Day < 1 || t.Day > 31 ||
			t.Hour > 23 || t.Minute > 59 || t.Second > 60 {
			return fmt.Errorf("timestamp %d-%d-%d %d:%d:%d out of range: %w",
				t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, ErrMalformedLength)
		}
	}
	return nil
}

// Encode writes the 7-byte timestamp.
func (t *Time) Encode(cur *binary.Cursor) error {
	cur.WriteUint16(t.Year)
	cur.WriteUint8(t.Month)
	cur.WriteUint8(t.Day)
	cur.WriteUint8(t.Hour)
	cur.WriteUint8(t.Minute)
	cur.WriteUint8(t.Second)
	return nil
}

// SetTime fills the fields from a time value, in UTC.
func (t *Time) SetTime(ts time.Time) {
	ts = ts.UTC()
	t.Year = uint16(ts.Year())
	t.Month = uint8(ts.Month())
	t.Day = uint8(ts.Day())
	t.Hour = uint8(ts.Hour())
	t.Minute = uint8(ts.Minute())
	t.Second = uint8(ts.Second())
}

// Time returns the stored timestamp as a time value in UTC.
func (t *Time) Time() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}
