package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/observability"
	"github.com/jonathan/resume-wizard/internal/progress"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/validation"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Review an exported session snapshot",
	Long:  "Validates a session snapshot file and prints its review, the mapped snippets and, when every section passes, the profile summary.",
	RunE:  runSummary,
}

var summaryInput string

func init() {
	summaryCmd.Flags().StringVarP(&summaryInput, "in", "i", "", "Path to snapshot JSON file (required)")
	if err := summaryCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(summaryInput)
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}
	if err := schemas.ValidateSnapshot(content); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	var state wizard.State
	if err := json.Unmarshal(content, &state); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snap := validation.Snapshot{
		BasicInfo:   state.BasicInfo,
		Experiences: state.Experiences,
		Projects:    state.Projects,
		Education:   state.Education,
		Skills:      state.Skills,
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintReview(snap.Review(), progress.Compute(state.BasicInfo, state.Experiences, state.Skills))
	printer.PrintMapped(state.Mapped)
	if snap.CanComplete() {
		printer.PrintSummary(snap.Summary())
	}
	return nil
}
