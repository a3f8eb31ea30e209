// Package main provides the entry point for the resume wizard HTTP API server
// and its companion tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_wizard",
	Short: "Resume-to-profile wizard server",
	Long:  "Resume wizard walks a user through building a structured profile from an uploaded resume, one section at a time, and hands the completed profile off.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
