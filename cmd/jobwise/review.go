package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reviewResume string
	reviewFormat string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a résumé and suggest improvements",
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewResume, "resume", "r", "", "Path to the résumé file (required)")
	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", formatTable, "Output format: json, yaml or table")
	_ = reviewCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(reviewFormat); err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	review, err := a.service.Review(cmd.Context(), reviewResume)
	if err != nil {
		return fmt.Errorf("failed to review resume: %w", err)
	}
	return writeReview(cmd.OutOrStdout(), reviewFormat, review)
}
