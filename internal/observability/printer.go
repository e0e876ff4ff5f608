// Package observability renders match results and reviews for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/fusion"
	"github.com/ayushk-1801/jobwise/internal/types"
)

// boxWidth is the width of text boxes.
const boxWidth = 72

// Printer writes human-readable output to out.
type Printer struct {
	out     io.Writer
	heading *color.Color
	good    *color.Color
	warn    *color.Color
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
}

// PrintResult prints the match result as a two-column table.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintResult(result *types.FinalResult) {
	if result == nil {
		return
	}

	p.heading.Fprintln(p.out, "MATCH RESULT")
	table := p.newTable([]string{"Field", "Value"})
	table.Append([]string{"similarity", fmt.Sprintf("%.4f", result.Similarity)})
	table.Append([]string{"n_years", fmt.Sprintf("%d", result.TenureYears)})
	table.Append([]string{"skills", result.Skills})
	table.Append([]string{"projects", result.Projects})
	table.Append([]string{"reason", result.Reason})
	table.Render()
}

// PrintSignals prints every partial signal and how it was weighted.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintSignals(llmScore float64, facets embedding.FacetResults, diag fusion.Diagnostics) {
	mode := p.good.Sprint(string(diag.Mode))
	if diag.Mode == fusion.ModeDegraded {
		mode = p.warn.Sprint(string(diag.Mode))
	}
	p.heading.Fprintf(p.out, "SIGNALS ")
	fmt.Fprintf(p.out, "(mode: %s)\n", mode)

	table := p.newTable([]string{"Signal", "Score", "Weight", "Usable"})
	table.Append([]string{"llm", fmt.Sprintf("%.4f", llmScore), "0.5 (blend)", "yes"})
	table.Append(facetRow("skills", facets.Skills, diag.Weights.Skills))
	table.Append(facetRow("experience", facets.Experience, diag.Weights.Experience))
	table.Append(facetRow("education", facets.Education, diag.Weights.Education))
	if diag.TenureFit != nil {
		table.Append([]string{"tenure", fmt.Sprintf("%.4f", *diag.TenureFit), fmt.Sprintf("%.1f", diag.Weights.Tenure), "yes"})
	}
	table.SetFooter([]string{"weighted sum", fmt.Sprintf("%.4f", diag.WeightedSum), "", ""})
	table.Render()
}

// PrintReview prints a résumé review in two boxes.
func (p *Printer) PrintReview(review *types.ResumeReview) {
	if review == nil {
		return
	}
	p.printBox("REVIEW", review.Review)
	p.printBox("OPTIMIZATION", review.Optimization)
}

func (p *Printer) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(true)
	table.SetColWidth(boxWidth - 20)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func facetRow(name string, result embedding.Result, weight float64) []string {
	usable := "yes"
	if !result.Usable {
		usable = "no"
	}
	return []string{name, fmt.Sprintf("%.4f", result.Score), fmt.Sprintf("%.1f", weight), usable}
}

//nolint:errcheck // terminal output
func (p *Printer) printBox(title, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s%s │\n", p.heading.Sprint(title), strings.Repeat(" ", max(0, boxWidth-4-len(title))))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range wrap(content, boxWidth-4) {
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(0, boxWidth-4-len([]rune(line)))))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap breaks text into lines of at most width runes on word boundaries,
// keeping existing line breaks.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, string([]rune(word)[:width]))
				word = string([]rune(word)[width:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
