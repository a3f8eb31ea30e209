package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-wizard/internal/upload"
)

var checkUploadCmd = &cobra.Command{
	Use:   "check-upload <file>",
	Short: "Check whether a file would be accepted as a resume upload",
	Long:  "Detects the content type of a file and applies the upload type and size rules, printing the verdict as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckUpload,
}

var (
	checkUploadType  string
	checkUploadLimit int64
)

func init() {
	checkUploadCmd.Flags().StringVarP(&checkUploadType, "type", "t", "", "Declared content type (detected when empty)")
	checkUploadCmd.Flags().Int64Var(&checkUploadLimit, "max-bytes", upload.MaxSize, "Maximum accepted size in bytes")
	rootCmd.AddCommand(checkUploadCmd)
}

// uploadVerdict is printed by check-upload.
type uploadVerdict struct {
	Filename    string `json:"filename"`
	Accepted    bool   `json:"accepted"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	Reason      string `json:"reason,omitempty"`
	Message     string `json:"message,omitempty"`
}

func runCheckUpload(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	checker := upload.NewChecker(checkUploadLimit)
	verdict := uploadVerdict{Filename: filepath.Base(path)}

	file, err := checker.Check(verdict.Filename, checkUploadType, f)
	if err != nil {
		var rejected *upload.RejectionError
		if !errors.As(err, &rejected) {
			return fmt.Errorf("failed to read file: %w", err)
		}
		verdict.Reason = string(rejected.Reason)
		verdict.ContentType = rejected.ContentType
		verdict.Size = rejected.Size
		verdict.Message = rejected.Error()
	} else {
		verdict.Accepted = true
		verdict.ContentType = file.ContentType
		verdict.Size = file.Size()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(verdict); err != nil {
		return err
	}
	if !verdict.Accepted {
		return fmt.Errorf("upload rejected: %s", verdict.Reason)
	}
	return nil
}
