// Package main implements the osdetect CLI, a thin wrapper around the
// detection engine: it parses a path/filesystem-kind pair, runs detection
// and prints the result.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilexum-group/osdetect/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "osdetect",
	Short: "Detect which operating system is installed on a device or directory tree",
	Long: "osdetect identifies the operating system installed on a block device or\n" +
		"directory tree by mounting it read-only (when needed) and inspecting\n" +
		"marker files. The target is never modified.",
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(
		newDeviceCommand(),
		newPathCommand(),
		newScanCommand(),
	)
}

func main() {
	utils.InitDefaultLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
