package container

import (
	"fmt"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/chunk"
)

// Record describes one framed record as it sits in the stream, without
// decoding its body. Shared by the CLI and the inspection daemon.
type Record struct {
	Name     string `json:"name"`
	Length   int    `json:"length"`
	Critical bool   `json:"critical"`
	Public   bool   `json:"public"`
	Safe     bool   `json:"safeToCopy"`
	Known    bool   `json:"known"`
	CRCOK    bool   `json:"crcOk"`
	Sequence int    `json:"sequence"`
}

// Inspect walks the record framing of a container and reports every
// record's identity, property bits and checksum status. Bodies are not
// decoded, so malformed chunk contents do not stop the walk; broken
// framing does.
func Inspect(data []byte, table *chunk.Table) ([]Record, error) {
	if table == nil {
		table = chunk.NewTable()
	}

	cur := binary.NewCursor(data)
	sig, err := cur.ReadString(len(Signature))
	if err != nil || sig != Signature {
		return nil, fmt.Errorf("inspecting container: %w", ErrBadSignature)
	}

	// Chunks are constructed only to read their sequence number, but
	// they still get a real (empty) sibling set rather than nil.
	seqSet := chunk.NewSet()

	var records []Record
	for cur.Remaining() > 0 {
		name, body, sum, err := readRecord(cur)
		if err != nil {
			return records, fmt.Errorf("inspecting container: %w", err)
		}

		rec := Record{
			Name:     name,
			Length:   len(body),
			Critical: chunk.Critical(name),
			Public:   chunk.Public(name),
			Safe:     chunk.SafeToCopy(name),
			CRCOK:    binary.ValidateChecksum(sum, []byte(name), body),
			Sequence: chunk.SeqDefault,
		}
		if ctor, ok := table.Lookup(name); ok {
			rec.Known = true
			rec.Sequence = ctor(seqSet).Sequence()
		}
		records = append(records, rec)
	}
	return records, nil
}
