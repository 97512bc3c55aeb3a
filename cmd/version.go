package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/mentor-match/internal/artifact"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the supported artifact format",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (artifact format v%d)\n", app, version, artifact.FormatVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
