package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pngbox/internal/pngbox/chunk"
	"pngbox/internal/pngbox/container"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "List the chunks of a container",
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

			fmt.Printf("%-6s %10s %-9s %-8s %-7s %-4s\n", "TYPE", "LENGTH", "CLASS", "SCOPE", "COPY", "CRC")
			for _, r := range records {
				class := "ancillary"
				if r.Critical {
					class = "critical"
				}
				scope := "private"
				if r.Public {
					scope = "public"
				}
				copySafe := "unsafe"
				if r.Safe {
					copySafe = "safe"
				}
				crc := "ok"
				if !r.CRCOK {
					crc = "BAD"
				}
				fmt.Printf("%-6s %10d %-9s %-8s %-7s %-4s\n", r.Name, r.Length, class, scope, copySafe, crc)
			}
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Strictly decode a container and report the first problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container.Open(args[0], container.Options{Strict: true})
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok, %d chunks, %d data bytes\n",
				args[0], c.Chunks().Len(), len(chunk.JoinData(c.Chunks())))
			return nil
		},
	}
}
