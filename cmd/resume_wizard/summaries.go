package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/db"
	"github.com/jonathan/resume-wizard/internal/observability"
)

var summariesCmd = &cobra.Command{
	Use:   "summaries [session-id]",
	Short: "List archived profile summaries",
	Long:  "Reads completed profiles archived by the postgres handoff backend. With a session id, prints that profile.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummaries,
}

var summariesLimit int

func init() {
	summariesCmd.Flags().IntVarP(&summariesLimit, "limit", "n", 20, "Maximum number of summaries to list")
	rootCmd.AddCommand(summariesCmd)
}

func runSummaries(cmd *cobra.Command, args []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if len(args) == 1 {
		rec, err := database.GetSummary(ctx, args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no summary archived for session %s", args[0])
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(rec.Summary)
		return nil
	}

	records, err := database.ListSummaries(ctx, summariesLimit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
