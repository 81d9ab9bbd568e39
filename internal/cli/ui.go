package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kpauljoseph/printcards/internal/generator"
	"github.com/kpauljoseph/printcards/internal/layout"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func keyValue(key, value string) string {
	return styleKey.Render(key) + " " + styleValue.Render(value)
}

// renderPlan formats the settings preview shown before generating.
func renderPlan(plan *generator.Plan) string {
	var b strings.Builder
	unit := plan.Unit

	b.WriteString(styleTitle.Render("Preview"))
	b.WriteString("\n")
	lines := []string{
		keyValue("Paper", fmt.Sprintf("%s %s (%s)", plan.Paper, plan.Orientation, formatSize(plan.Page.Width, plan.Page.Height, unit))),
		keyValue("Card", formatSize(plan.Card.Width, plan.Card.Height, unit)),
		keyValue("Margins", fmt.Sprintf("%g x %g %s", plan.Spacing.MarginX, plan.Spacing.MarginY, unit)),
		keyValue("Gap", fmt.Sprintf("%g %s", plan.Spacing.Gap, unit)),
		keyValue("Grid", fmt.Sprintf("%d columns x %d rows = %d per page", plan.Layout.Columns, plan.Layout.Rows, plan.CardsPerPage)),
	}
	if plan.Records >= 0 {
		pages := fmt.Sprintf("%d per side", plan.Pages)
		if plan.Merge {
			pages += fmt.Sprintf(", %d merged", plan.TotalPages())
		}
		lines = append(lines,
			keyValue("Cards", fmt.Sprint(plan.Records)),
			keyValue("Pages", pages),
		)
	}
	if plan.Output != "" {
		lines = append(lines, keyValue("Output", plan.Output))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func formatSize(w, h float64, unit string) string {
	return fmt.Sprintf("%.4g x %.4g %s", w, h, unit)
}

// renderGrid draws the back-side column order under the front one, so the
// mirroring is visible at a glance.
func renderGrid(l layout.Layout) string {
	headers := make([]string, l.Columns+1)
	front := make([]string, l.Columns+1)
	back := make([]string, l.Columns+1)
	headers[0], front[0], back[0] = "", "front", "back"
	for c := 0; c < l.Columns; c++ {
		headers[c+1] = fmt.Sprint(c + 1)
		front[c+1] = fmt.Sprint(c + 1)
		back[c+1] = fmt.Sprint(l.Columns - c)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(front, back).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}

// renderFieldErrors lists every rejected setting, or the error itself.
func renderFieldErrors(err error) string {
	var verrs layout.ValidationErrors
	if !errors.As(err, &verrs) {
		return styleIconError.Render(iconError) + " " + err.Error()
	}

	var b strings.Builder
	b.WriteString(styleIconError.Render(iconError) + " " + layout.ErrInvalidLayoutConfiguration.Error() + "\n")
	for _, e := range verrs {
		b.WriteString("  " + styleWarning.Render(e.Field) + " " + styleDim.Render(e.Reason) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func printReport(w io.Writer, report *generator.Report) {
	printSuccess(w, "Printed %d cards on %d pages per side in %v", report.Records, report.Pages, report.Duration.Round(time.Millisecond))
	for _, path := range report.Artifacts {
		printFile(w, path)
	}
}
