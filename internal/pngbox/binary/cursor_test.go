package binary

import (
	"bytes"
	"errors"
	"testing"
)

func TestCursor(t *testing.T) {
	t.Run("Write Read Roundtrip", func(t *testing.T) {
		w := NewWriter()
		w.WriteUint8(0x12)
		w.WriteUint16(0x3456)
		w.WriteUint32(0x789abcde)
		w.WriteString("IHDR")
		w.WriteBytes([]byte{1, 2, 3})

		r := NewCursor(w.Bytes())

		b, err := r.ReadUint8()
		if err != nil || b != 0x12 {
			t.Fatalf("reading uint8: got %#x, err %v", b, err)
		}
		u16, err := r.ReadUint16()
		if err != nil || u16 != 0x3456 {
			t.Fatalf("reading uint16: got %#x, err %v", u16, err)
		}
		u32, err := r.ReadUint32()
		if err != nil || u32 != 0x789abcde {
			t.Fatalf("reading uint32: got %#x, err %v", u32, err)
		}
		s, err := r.ReadString(4)
		if err != nil || s != "IHDR" {
			t.Fatalf("reading string: got %q, err %v", s, err)
		}
		raw, err := r.ReadBytes(3)
		if err != nil || !bytes.Equal(raw, []byte{1, 2, 3}) {
			t.Fatalf("reading bytes: got %v, err %v", raw, err)
		}
		if r.Remaining() != 0 {
			t.Errorf("expected empty cursor, %d bytes remain", r.Remaining())
		}
	})

	t.Run("Big Endian Layout", func(t *testing.T) {
		w := NewWriter()
		w.WriteUint32(0x01020304)
		if !bytes.Equal(w.Bytes(), []byte{1, 2, 3, 4}) {
			t.Errorf("expected big-endian layout, got %v", w.Bytes())
		}
	})

	t.Run("Read Past End Fails", func(t *testing.T) {
		r := NewCursor([]byte{1, 2})
		if _, err := r.ReadUint32(); !errors.Is(err, ErrShortBuffer) {
			t.Errorf("expected ErrShortBuffer, got %v", err)
		}
		// Position must not advance on a failed read
		if r.Pos() != 0 {
			t.Errorf("position moved to %d on failed read", r.Pos())
		}
	})

	t.Run("Skip", func(t *testing.T) {
		r := NewCursor([]byte{1, 2, 3, 4})
		if err := r.Skip(3); err != nil {
			t.Fatalf("skipping: %v", err)
		}
		if r.Remaining() != 1 {
			t.Errorf("expected 1 byte remaining, got %d", r.Remaining())
		}
		if err := r.Skip(2); !errors.Is(err, ErrShortBuffer) {
			t.Errorf("expected ErrShortBuffer, got %v", err)
		}
	})

	t.Run("ReadBytes Returns Copy", func(t *testing.T) {
		src := []byte{1, 2, 3}
		r := NewCursor(src)
		b, err := r.ReadBytes(3)
		if err != nil {
			t.Fatalf("reading bytes: %v", err)
		}
		b[0] = 99
		if src[0] != 1 {
			t.Error("ReadBytes aliases the source buffer")
		}
	})
}

func TestChecksum(t *testing.T) {
	t.Run("Parts Equal Concatenation", func(t *testing.T) {
		a := Checksum([]byte("IHDR"), []byte{1, 2, 3})
		b := Checksum([]byte("IHDR\x01\x02\x03"))
		if a != b {
			t.Errorf("split checksum %#x != joined checksum %#x", a, b)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		sum := Checksum([]byte("test"))
		if !ValidateChecksum(sum, []byte("test")) {
			t.Error("checksum did not validate")
		}
		if ValidateChecksum(sum+1, []byte("test")) {
			t.Error("wrong checksum validated")
		}
	})
}
