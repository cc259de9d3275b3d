package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	debug  bool
	dryRun bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "mm",
	Short: "Deep clean your macOS developer machine",
	Long: `MacMole - Deep clean your macOS developer machine.

A macOS sibling of Mole (https://github.com/tw93/Mole).
Reclaims disk space from build caches, stale Xcode SDKs, simulator
leftovers, package manager caches, and forgotten project artifacts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("MacMole - Deep clean your macOS developer machine")
		fmt.Println("Run 'mm --help' for available commands.")
		fmt.Println()
		fmt.Printf("Version %s (%s) built %s\n", appVersion, appCommit, appDate)
		os.Exit(0)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mm %s (%s) built %s\n", appVersion, appCommit, appDate)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(sdkCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
