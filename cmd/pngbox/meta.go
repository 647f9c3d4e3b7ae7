package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pngbox/internal/pngbox/chunk"
	"pngbox/internal/pngbox/container"
)

func metaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Read or write the structured metadata chunk",
	}
	cmd.AddCommand(metaGetCmd(), metaSetCmd())
	return cmd
}

func metaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file>",
		Short: "Print the metadata chunk as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := container.Open(args[0], container.Options{})
			if err != nil {
				return err
			}

			ch, ok := c.Chunks().First(chunk.TypeMetadata)
			if !ok {
				return fmt.Errorf("%s has no metadata chunk", args[0])
			}
			meta := ch.(*chunk.Metadata)

			major, minor := meta.Version()
			out, err := json.MarshalIndent(map[string]interface{}{
				"dataType": meta.DataType(),
				"version":  fmt.Sprintf("%d.%d", major, minor),
				"content":  meta.Content,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling metadata: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func metaSetCmd() *cobra.Command {
	var tag string
	var major, minor int

	cmd := &cobra.Command{
		Use:   "set <file> <json>",
		Short: "Set the metadata chunk content and rewrite the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content interface{}
			if err := json.Unmarshal([]byte(args[1]), &content); err != nil {
				return fmt.Errorf("parsing content: %w", err)
			}

			c, err := container.Open(args[0], container.Options{})
			if err != nil {
				return err
			}

			var meta *chunk.Metadata
			if ch, ok := c.Chunks().First(chunk.TypeMetadata); ok {
				meta = ch.(*chunk.Metadata)
			} else {
				ch, err := c.Add(chunk.TypeMetadata)
				if err != nil {
					return err
				}
				meta = ch.(*chunk.Metadata)
			}

			if err := meta.SetDataType(tag); err != nil {
				return err
			}
			if err := meta.SetVersion(major, minor); err != nil {
				return err
			}
			meta.Content = content

			return c.Save(args[0])
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "json", "4-character data-type tag")
	cmd.Flags().IntVar(&major, "major", 1, "major version")
	cmd.Flags().IntVar(&minor, "minor", 0, "minor version")
	return cmd
}
