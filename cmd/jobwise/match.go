package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayushk-1801/jobwise/internal/fetch"
	"github.com/ayushk-1801/jobwise/internal/ingestion"
	"github.com/ayushk-1801/jobwise/internal/matching"
	"github.com/ayushk-1801/jobwise/internal/types"
)

var (
	matchResume         string
	matchJobTitle       string
	matchJobDescription string
	matchJobFile        string
	matchJobURL         string
	matchMinYears       int
	matchFormat         string
	matchVerbose        bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a résumé against a job description",
	Long: `Score a résumé (PDF, HTML, Markdown or text) against a job description.

The job description is passed inline with --job-description, read from a
file with --job-file or downloaded with --job-url. --min-years enables the
tenure component.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to the résumé file (required)")
	matchCmd.Flags().StringVarP(&matchJobTitle, "job-title", "t", "", "Job title (required)")
	matchCmd.Flags().StringVarP(&matchJobDescription, "job-description", "d", "", "Job description text")
	matchCmd.Flags().StringVarP(&matchJobFile, "job-file", "j", "", "Path to a job description file")
	matchCmd.Flags().StringVarP(&matchJobURL, "job-url", "u", "", "URL of a job posting to download")
	matchCmd.Flags().IntVar(&matchMinYears, "min-years", 0, "Required years of experience")
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", formatJSON, "Output format: json, yaml or table")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Include the partial signals behind the score")

	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job-title")
	matchCmd.MarkFlagsMutuallyExclusive("job-description", "job-file", "job-url")
	matchCmd.MarkFlagsOneRequired("job-description", "job-file", "job-url")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(matchFormat); err != nil {
		return err
	}
	req, err := buildMatchRequest(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	match, err := a.service.ComputeMatch(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to compute match: %w", err)
	}
	return writeMatch(cmd.OutOrStdout(), matchFormat, match, matchVerbose)
}

// buildMatchRequest turns the match flags into a matching request.
func buildMatchRequest(cmd *cobra.Command) (matching.Request, error) {
	description, err := jobDescription(cmd.Context(), matchJobDescription, matchJobFile, matchJobURL)
	if err != nil {
		return matching.Request{}, err
	}

	req := matching.Request{
		ResumePath:     matchResume,
		JobTitle:       strings.TrimSpace(matchJobTitle),
		JobDescription: description,
	}
	if req.JobTitle == "" {
		return matching.Request{}, errors.New("--job-title must not be blank")
	}
	if cmd.Flags().Changed("min-years") {
		if matchMinYears < 0 {
			return matching.Request{}, errors.New("--min-years must not be negative")
		}
		req.MinYears = types.Some(matchMinYears)
	}
	return req, nil
}

// jobDescription returns the inline description, the contents of path or the
// posting downloaded from jobURL. A .html or .htm file is returned raw; the
// matcher extracts its text.
func jobDescription(ctx context.Context, inline, path, jobURL string) (string, error) {
	if jobURL != "" {
		posting, err := fetch.JobPosting(ctx, jobURL, nil)
		if err != nil {
			return "", err
		}
		return posting.Text, nil
	}
	if path == "" {
		if strings.TrimSpace(inline) == "" {
			return "", errors.New("job description is empty")
		}
		return inline, nil
	}

	format, err := ingestion.DetectFormat(path)
	if err != nil {
		return "", err
	}
	if format == ingestion.FormatHTML {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(content), nil
	}
	return ingestion.ExtractText(path)
}
