// Package printer formats CLI output: status messages and the onboarding
// report table.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/johnwards/onboard/internal/domain"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a green message prefixed with a checkmark.
func Success(format string, a ...any) {
	green.Printf("✓ %s\n", fmt.Sprintf(format, a...))
}

// Warning prints a yellow message.
func Warning(format string, a ...any) {
	yellow.Printf("! %s\n", fmt.Sprintf(format, a...))
}

// Step prints a progress message for a multi-step command.
func Step(format string, a ...any) {
	cyan.Printf("→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints title and explanation to stderr and returns an error carrying
// only the title, for cobra to exit non-zero without printing it again.
func Error(title, explanation string) error {
	red.Fprintf(os.Stderr, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", explanation)
	}
	return fmt.Errorf("%s", title)
}

const rowFormat = "%-24s %-10s %-10s %7s %7s  %s\n"

// Report writes one line per onboarding with the health label coloured by
// severity.
func Report(w io.Writer, rows []domain.OnboardingSummary) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No onboardings found.")
		return
	}

	fmt.Fprintf(w, rowFormat, "COMPANY", "STATUS", "HEALTH", "DONE", "BLOCKED", "NEXT ACTION")
	for _, r := range rows {
		next := r.NextAction
		if next == "" {
			next = "-"
		}
		health := healthColor(r.Health).Sprintf("%-10s", r.Health)
		fmt.Fprintf(w, "%-24s %-10s %s %7s %7d  %s\n",
			truncate(r.CompanyName, 24),
			r.Status,
			health,
			fmt.Sprintf("%d/%d", r.DoneCount, r.TaskCount),
			r.BlockedCount,
			next,
		)
	}
}

// ReportJSON writes rows as an indented JSON array.
func ReportJSON(w io.Writer, rows []domain.OnboardingSummary) error {
	if rows == nil {
		rows = []domain.OnboardingSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func healthColor(h domain.Health) *color.Color {
	switch h {
	case domain.HealthBlocked:
		return red
	case domain.HealthAtRisk:
		return yellow
	default:
		return green
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
