package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-ontograph/pkg/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

// renderSummary formats a finished run: one row per root, then totals.
func renderSummary(res *pipeline.Result, output string) string {
	width := len("root")
	for _, r := range res.Roots {
		width = max(width, len(r.Root))
	}
	row := func(cols ...string) string {
		return fmt.Sprintf("%-*s  %6s  %6s  %5s  %9s", width, cols[0], cols[1], cols[2], cols[3], cols[4])
	}

	lines := []string{headerStyle.Render(row("root", "nodes", "edges", "depth", "time"))}
	for _, r := range res.Roots {
		lines = append(lines, row(
			r.Root,
			fmt.Sprintf("+%d", r.Nodes),
			fmt.Sprintf("+%d", r.Edges),
			fmt.Sprint(r.Depth),
			r.Duration.Round(time.Microsecond).String(),
		))
	}

	totals := fmt.Sprintf("%d nodes, %d edges, %d samples", res.Graph.NodeCount(), res.Graph.EdgeCount(), res.Samples)
	if res.Annotated > 0 {
		totals += fmt.Sprintf(", %d annotated", res.Annotated)
	}

	parts := []string{
		titleStyle.Render(fmt.Sprintf("ontograph %s build", res.Mode)),
		mutedStyle.Render("run " + res.RunID),
		statsBoxStyle.Render(strings.Join(lines, "\n")),
		successStyle.Render(totals),
	}
	if output != "" {
		parts = append(parts, mutedStyle.Render("written to "+output))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
