// Package main provides the entry point for the gitowners CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitowners/cmd/gitowners/commands"
	"github.com/Sumatoshi-tech/gitowners/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitowners",
		Short: "Weighted code ownership from git blame",
		Long: `gitowners attributes line ownership of files and directory trees to
authors using a single git blame snapshot, aggregated bottom-up.

Commands:
  owners    Score and rank owners for a file or directory tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewOwnersCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "gitowners %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
