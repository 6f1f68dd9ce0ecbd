// Package main provides the ats command line tool for checking a resume
// against a job description.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ats",
	Short:         "Resume ATS keyword checker",
	Long:          "ats scores how well a resume covers the keywords of a job description, suggests near matches for missing keywords and splits documents into sections.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
