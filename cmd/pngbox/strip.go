package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pngbox/internal/pngbox/binary"
	"pngbox/internal/pngbox/chunk"
	"pngbox/internal/pngbox/container"
)

// strip rewrites a container keeping only critical chunks and ancillary
// chunks marked safe to copy. It works on the raw record framing so
// unknown chunks pass through untouched, exactly what the safe-to-copy
// bit is for.
func stripCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "strip <file>",
		Short: "Drop unsafe-to-copy ancillary chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			records, err := container.Inspect(data, nil)
			if err != nil {
				return err
			}

			keep := make(map[string]bool, len(records))
			dropped := 0
			for _, r := range records {
				if r.Critical || r.Safe {
					keep[r.Name] = true
				} else {
					dropped++
				}
			}

			stripped, err := rewrite(data, keep)
			if err != nil {
				return err
			}

			if out == "" {
				out = args[0]
			}
			if err := os.WriteFile(out, stripped, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("%s: dropped %d unsafe ancillary chunks\n", out, dropped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: in place)")
	return cmd
}

// rewrite copies the signature and every record whose type is in keep.
func rewrite(data []byte, keep map[string]bool) ([]byte, error) {
	cur := binary.NewCursor(data)
	sig, err := cur.ReadString(len(container.Signature))
	if err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}

	out := binary.NewWriter()
	out.WriteString(sig)

	for cur.Remaining() > 0 {
		start := cur.Pos()
		length, err := cur.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("reading record length: %w", err)
		}
		name, err := cur.ReadString(4)
		if err != nil {
			return nil, fmt.Errorf("reading record type: %w", err)
		}
		if err := cur.Skip(int(length) + 4); err != nil {
			return nil, fmt.Errorf("skipping %q body: %w", name, err)
		}
		if keep[name] || chunk.Critical(name) {
			out.WriteBytes(data[start:cur.Pos()])
		}
	}
	return out.Bytes(), nil
}
