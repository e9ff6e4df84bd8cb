package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fzahariev/logkpredict/internal/descriptor"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of logkpredict",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("logkpredict %s (descriptor catalog %s)\n", version, descriptor.CatalogVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
