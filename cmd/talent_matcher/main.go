// Package main provides the talent_matcher command line: the REST and MCP servers plus
// offline scoring, recommendation and resume extraction over a dataset or database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath  string
	datasetPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:     "talent_matcher",
	Short:   "Candidate/job matching and recommendation engine",
	Long:    "talent_matcher scores candidates against jobs, explains and gaps those scores, recommends jobs and candidates, and extracts structured data from resume text.",
	Version: version,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./config.*)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Path to a JSON dataset (overrides dataset.path and database.url)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and human-readable output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
