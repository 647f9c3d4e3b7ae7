package container

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/chunk"
)

// record frames one chunk record with a correct checksum.
func record(name string, body []byte) []byte {
	cur := binary.NewWriter()
	cur.WriteUint32(uint32(len(body)))
	cur.WriteString(name)
	cur.WriteBytes(body)
	cur.WriteUint32(binary.Checksum([]byte(name), body))
	return cur.Bytes()
}

// headerBody builds a minimal 1x1 header body.
func headerBody(bitDepth, colorType uint8) []byte {
	cur := binary.NewWriter()
	cur.WriteUint32(1)
	cur.WriteUint32(1)
	cur.WriteUint8(bitDepth)
	cur.WriteUint8(colorType)
	cur.WriteUint8(0)
	cur.WriteUint8(0)
	cur.WriteUint8(0)
	return cur.Bytes()
}

// stream concatenates the signature and the given records.
func stream(records ...[]byte) []byte {
	out := []byte(Signature)
	for _, r := range records {
		out = append(out, r...)
	}
	return out
}

func TestDecode(t *testing.T) {
	t.Run("Bad Signature", func(t *testing.T) {
		_, err := Decode([]byte("JFIF not PNG at all"), Options{})
		if !errors.Is(err, ErrBadSignature) {
			t.Errorf("expected ErrBadSignature, got %v", err)
		}
	})

	t.Run("Minimal Container", func(t *testing.T) {
		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			record(chunk.TypeEnd, nil),
		)
		c, err := Decode(data, Options{Strict: true})
		if err != nil {
			t.Fatalf("decoding minimal container: %v", err)
		}
		if c.Chunks().Len() != 2 {
			t.Errorf("decoded %d chunks, want 2", c.Chunks().Len())
		}
	})

	t.Run("No Header Fails", func(t *testing.T) {
		data := stream(record(chunk.TypeEnd, nil))
		_, err := Decode(data, Options{})
		if !errors.Is(err, chunk.ErrMissingDependency) {
			t.Errorf("expected ErrMissingDependency, got %v", err)
		}
	})

	t.Run("Unknown Critical Aborts", func(t *testing.T) {
		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			record("KruD", []byte{1, 2, 3}),
			record(chunk.TypeEnd, nil),
		)
		_, err := Decode(data, Options{})
		if !errors.Is(err, chunk.ErrUnknownCriticalChunk) {
			t.Errorf("expected ErrUnknownCriticalChunk, got %v", err)
		}
	})

	t.Run("Unknown Ancillary Skipped", func(t *testing.T) {
		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			record("kruD", []byte{1, 2, 3}),
			record(chunk.TypeEnd, nil),
		)
		c, err := Decode(data, Options{Strict: true})
		if err != nil {
			t.Fatalf("decoding container with unknown ancillary chunk: %v", err)
		}
		if _, ok := c.Chunks().First("kruD"); ok {
			t.Error("skipped chunk ended up in the set")
		}
		if c.Chunks().Len() != 2 {
			t.Errorf("decoded %d chunks, want 2", c.Chunks().Len())
		}
	})

	t.Run("Checksum Mismatch", func(t *testing.T) {
		bad := record(chunk.TypeText, []byte("Author\x00me"))
		bad[len(bad)-1] ^= 0xff

		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			bad,
			record(chunk.TypeEnd, nil),
		)

		if _, err := Decode(data, Options{Strict: true}); !errors.Is(err, ErrChecksumMismatch) {
			t.Errorf("expected ErrChecksumMismatch, got %v", err)
		}

		// Lenient mode logs and keeps the chunk
		c, err := Decode(data, Options{})
		if err != nil {
			t.Fatalf("lenient decode: %v", err)
		}
		if _, ok := c.Chunks().First(chunk.TypeText); !ok {
			t.Error("lenient decode dropped the chunk with a bad checksum")
		}
	})

	t.Run("Trailing Data After End", func(t *testing.T) {
		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			record(chunk.TypeEnd, nil),
		)
		data = append(data, 0xde, 0xad)

		if _, err := Decode(data, Options{Strict: true}); !errors.Is(err, chunk.ErrChunkOrder) {
			t.Errorf("expected ErrChunkOrder, got %v", err)
		}
		if _, err := Decode(data, Options{}); err != nil {
			t.Errorf("lenient decode: %v", err)
		}
	})

	t.Run("Missing End Marker", func(t *testing.T) {
		data := stream(record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)))

		if _, err := Decode(data, Options{Strict: true}); !errors.Is(err, chunk.ErrMissingDependency) {
			t.Errorf("expected ErrMissingDependency, got %v", err)
		}
		if _, err := Decode(data, Options{}); err != nil {
			t.Errorf("lenient decode: %v", err)
		}
	})

	t.Run("Metadata Before Header Aborts", func(t *testing.T) {
		data := stream(
			record(chunk.TypeMetadata, metadataBody(t)),
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			record(chunk.TypeEnd, nil),
		)
		if _, err := Decode(data, Options{Strict: true}); !errors.Is(err, chunk.ErrMissingDependency) {
			t.Errorf("expected ErrMissingDependency, got %v", err)
		}
		if _, err := Decode(data, Options{}); !errors.Is(err, chunk.ErrMissingDependency) {
			t.Errorf("lenient decode: expected ErrMissingDependency, got %v", err)
		}
	})

	t.Run("Duplicate Singleton Aborts", func(t *testing.T) {
		meta := record(chunk.TypeMetadata, metadataBody(t))
		data := stream(
			record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
			meta,
			meta,
			record(chunk.TypeEnd, nil),
		)
		_, err := Decode(data, Options{})
		if !errors.Is(err, chunk.ErrDuplicateChunk) {
			t.Errorf("expected ErrDuplicateChunk, got %v", err)
		}
	})
}

// metadataBody builds a valid metadata chunk body via the chunk's own
// encoder.
func metadataBody(t *testing.T) []byte {
	t.Helper()

	m := chunk.NewMetadata(chunk.NewSet())
	if err := m.SetDataType("json"); err != nil {
		t.Fatalf("setting data type: %v", err)
	}
	m.Content = map[string]interface{}{"k": "v"}

	cur := binary.NewWriter()
	if err := m.Encode(cur); err != nil {
		t.Fatalf("encoding metadata body: %v", err)
	}
	return cur.Bytes()
}

func TestEncodeOrdering(t *testing.T) {
	c := New(Options{})

	// Append out of order: terminal chunk first, then header, then palette
	if _, err := c.Add(chunk.TypeEnd); err != nil {
		t.Fatalf("adding end: %v", err)
	}
	h, err := c.Add(chunk.TypeHeader)
	if err != nil {
		t.Fatalf("adding header: %v", err)
	}
	hdr := h.(*chunk.Header)
	hdr.Width, hdr.Height = 1, 1
	hdr.BitDepth, hdr.ColorType = 1, chunk.ColorIndexed

	p, err := c.Add(chunk.TypePalette)
	if err != nil {
		t.Fatalf("adding palette: %v", err)
	}
	p.(*chunk.Palette).SetColors([]chunk.RGB{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}})

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("encoding container: %v", err)
	}

	records, err := Inspect(data, nil)
	if err != nil {
		t.Fatalf("inspecting encoded container: %v", err)
	}

	want := []string{chunk.TypeHeader, chunk.TypePalette, chunk.TypeEnd}
	if len(records) != len(want) {
		t.Fatalf("encoded %d records, want %d", len(records), len(want))
	}
	for i, name := range want {
		if records[i].Name != name {
			t.Errorf("record %d is %q, want %q", i, records[i].Name, name)
		}
	}
}

func TestRoundtrip(t *testing.T) {
	c := New(Options{})

	h, err := c.Add(chunk.TypeHeader)
	if err != nil {
		t.Fatalf("adding header: %v", err)
	}
	hdr := h.(*chunk.Header)
	hdr.Width, hdr.Height = 1, 1
	hdr.BitDepth, hdr.ColorType = 1, chunk.ColorIndexed

	p, err := c.Add(chunk.TypePalette)
	if err != nil {
		t.Fatalf("adding palette: %v", err)
	}
	pal := p.(*chunk.Palette)
	pal.SetColors([]chunk.RGB{{R: 10, G: 20, B: 30}, {R: 40, G: 50, B: 60}})

	hch, err := c.Add(chunk.TypeHistogram)
	if err != nil {
		t.Fatalf("adding histogram: %v", err)
	}
	hist := hch.(*chunk.Histogram)
	if err := hist.SetFrequencies([]uint16{3, 5}); err != nil {
		t.Fatalf("setting frequencies: %v", err)
	}

	mch, err := c.Add(chunk.TypeMetadata)
	if err != nil {
		t.Fatalf("adding metadata: %v", err)
	}
	meta := mch.(*chunk.Metadata)
	if err := meta.SetDataType("scrn"); err != nil {
		t.Fatalf("setting data type: %v", err)
	}
	if err := meta.SetVersion(1, 2); err != nil {
		t.Fatalf("setting version: %v", err)
	}
	meta.Content = map[string]interface{}{"display": float64(0)}

	d, err := c.Add(chunk.TypeData)
	if err != nil {
		t.Fatalf("adding image data: %v", err)
	}
	d.(*chunk.Data).Segment = []byte{0x78, 0x9c, 0x01}

	tch, err := c.Add(chunk.TypeTime)
	if err != nil {
		t.Fatalf("adding time: %v", err)
	}
	tch.(*chunk.Time).SetTime(time.Date(2026, 8, 25, 12, 30, 45, 0, time.UTC))

	if _, err := c.Add(chunk.TypeEnd); err != nil {
		t.Fatalf("adding end: %v", err)
	}

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("encoding container: %v", err)
	}

	out, err := Decode(data, Options{Strict: true})
	if err != nil {
		t.Fatalf("decoding encoded container: %v", err)
	}

	t.Run("Palette Preserved", func(t *testing.T) {
		ch, ok := out.Chunks().First(chunk.TypePalette)
		if !ok {
			t.Fatal("palette missing after roundtrip")
		}
		got := ch.(*chunk.Palette)
		if got.ColorCount() != 2 {
			t.Fatalf("ColorCount() = %d, want 2", got.ColorCount())
		}
		color, err := got.ColorAt(1)
		if err != nil {
			t.Fatalf("ColorAt(1): %v", err)
		}
		if color != (chunk.RGB{R: 40, G: 50, B: 60}) {
			t.Errorf("ColorAt(1) = %+v", color)
		}
	})

	t.Run("Histogram Preserved", func(t *testing.T) {
		ch, ok := out.Chunks().First(chunk.TypeHistogram)
		if !ok {
			t.Fatal("histogram missing after roundtrip")
		}
		got := ch.(*chunk.Histogram)
		if got.GetFrequency(0) != 3 || got.GetFrequency(1) != 5 {
			t.Errorf("frequencies = %d, %d", got.GetFrequency(0), got.GetFrequency(1))
		}
	})

	t.Run("Metadata Preserved", func(t *testing.T) {
		ch, ok := out.Chunks().First(chunk.TypeMetadata)
		if !ok {
			t.Fatal("metadata missing after roundtrip")
		}
		got := ch.(*chunk.Metadata)
		if got.DataType() != "scrn" {
			t.Errorf("DataType() = %q", got.DataType())
		}
		major, minor := got.Version()
		if major != 1 || minor != 2 {
			t.Errorf("Version() = %d.%d, want 1.2", major, minor)
		}
		content, ok := got.Content.(map[string]interface{})
		if !ok || content["display"] != float64(0) {
			t.Errorf("Content = %#v", got.Content)
		}
	})

	t.Run("Image Data Preserved", func(t *testing.T) {
		if !bytes.Equal(chunk.JoinData(out.Chunks()), []byte{0x78, 0x9c, 0x01}) {
			t.Errorf("image data = %v", chunk.JoinData(out.Chunks()))
		}
	})

	t.Run("Time Preserved", func(t *testing.T) {
		ch, ok := out.Chunks().First(chunk.TypeTime)
		if !ok {
			t.Fatal("time missing after roundtrip")
		}
		got := ch.(*chunk.Time).Time()
		want := time.Date(2026, 8, 25, 12, 30, 45, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("Time() = %v, want %v", got, want)
		}
	})
}

func TestInspect(t *testing.T) {
	data := stream(
		record(chunk.TypeHeader, headerBody(8, chunk.ColorGrayscale)),
		record("kruD", []byte{1, 2, 3}),
		record(chunk.TypeEnd, nil),
	)

	records, err := Inspect(data, nil)
	if err != nil {
		t.Fatalf("inspecting container: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("inspected %d records, want 3", len(records))
	}

	if !records[0].Known || !records[0].Critical || records[0].Sequence != chunk.SeqHeader {
		t.Errorf("header record = %+v", records[0])
	}
	if records[1].Known || records[1].Critical || records[1].Sequence != chunk.SeqDefault {
		t.Errorf("unknown record = %+v", records[1])
	}
	for _, r := range records {
		if !r.CRCOK {
			t.Errorf("record %q reports bad checksum", r.Name)
		}
	}
}
