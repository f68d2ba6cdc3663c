package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/indicator/internal/dto"
	"github.com/aretw0/indicator/pkg/coerce"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// summaryPaths are the resolved values shown per trace, in order.
var summaryPaths = []string{
	"value",
	"align",
	"number.font.size",
	"delta.font.size",
	"delta.reference",
	"title.font.size",
	"gauge.shape",
	"gauge.axis.range",
	"gauge.axis.dtick",
	"domain.x",
	"domain.y",
}

// ReportMarkdown summarizes a resolved document as markdown.
func ReportMarkdown(report dto.Report) string {
	var sb strings.Builder
	title := report.Document
	if title == "" {
		title = "document"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	for _, tr := range report.Traces {
		fmt.Fprintf(&sb, "## Trace %d: `%s`\n\n", tr.Index, tr.Mode)
		sb.WriteString("| attribute | value |\n|---|---|\n")
		for _, path := range summaryPaths {
			if v, ok := coerce.Get(tr.Out, path); ok {
				fmt.Fprintf(&sb, "| %s | `%v` |\n", path, v)
			}
		}
		sb.WriteString("\n")

		if len(tr.Replaced) == 0 {
			sb.WriteString("No values replaced.\n\n")
			continue
		}
		sb.WriteString("Replaced values:\n\n")
		for _, r := range tr.Replaced {
			fmt.Fprintf(&sb, "- **%s**: `%v` became `%v`\n", r.Path, r.Input, r.Output)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// LintMarkdown lists lint findings as markdown, grouped by trace.
func LintMarkdown(report dto.LintReport) string {
	var sb strings.Builder
	title := report.Document
	if title == "" {
		title = "document"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if report.Valid {
		sb.WriteString("No issues found.\n")
		return sb.String()
	}

	byTrace := make(map[int][]dto.Issue)
	for _, issue := range report.Issues {
		byTrace[issue.Trace] = append(byTrace[issue.Trace], issue)
	}
	traces := make([]int, 0, len(byTrace))
	for i := range byTrace {
		traces = append(traces, i)
	}
	sort.Ints(traces)

	for _, i := range traces {
		fmt.Fprintf(&sb, "## Trace %d\n\n", i)
		for _, issue := range byTrace[i] {
			if issue.Path == "" {
				fmt.Fprintf(&sb, "- %s\n", issue.Message)
				continue
			}
			fmt.Fprintf(&sb, "- **%s**: %s\n", issue.Path, issue.Message)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
