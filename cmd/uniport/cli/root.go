package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	version    = "dev"
	buildTime  = "unknown"
	gitCommit  = "unknown"
)

// SetVersion sets the version information
func SetVersion(v, b, g string) {
	version = v
	buildTime = b
	gitCommit = g
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "uniport",
	Short: "Universities dataset importer",
	Long:  `Uniport loads the public universities JSON dataset into a relational store. Imports are idempotent: re-running the same or an updated dataset refreshes rows without creating duplicates.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/uniport.yaml", "path to config file")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Uniport\n")
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Build Time: %s\n", buildTime)
			fmt.Printf("  Git Commit: %s\n", gitCommit)
		},
	})
}
