package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pngbox/internal/pngbox"
)

func main() {
	root := &cobra.Command{
		Use:           "pngbox",
		Short:         "Inspect and edit PNG chunk containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		infoCmd(),
		verifyCmd(),
		metaCmd(),
		stripCmd(),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pngbox: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(pngbox.BuildInfo())
		},
	}
}
