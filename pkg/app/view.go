package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/components"
)

// View implements tea.Model. Layout, top to bottom: title, chart raster
// (zone-marked for hover), accessible label line, tooltip line, help line.
func (a *App) View() string {
	if a.width <= 0 {
		return ""
	}

	t := a.opts.Theme
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim))
	tooltipStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.TooltipFG)).
		Background(lipgloss.Color(t.TooltipBG)).
		Padding(0, 1)

	var b strings.Builder

	entry := a.currentEntry()
	title := entry.Title
	if title == "" {
		title = "growth"
	}
	b.WriteString(" " + titleStyle.Render(title))
	if a.lastErr != nil {
		b.WriteString(dimStyle.Render("  (stale sample)"))
	}
	b.WriteString("\n")

	// Chart raster, marked as a hover zone and indented by the one-cell
	// margin assumed by onResize.
	frame := a.frame
	if frame == "" {
		frame = dimStyle.Render("waiting for size...")
	}
	b.WriteString(a.zones.Mark(chartZone, indent(frame, 1)))
	b.WriteString("\n")

	// Accessible label: the chart is exposed as an image with a
	// description, same as the web rendition's img role.
	b.WriteString(" " + dimStyle.Render("chart: "+a.ariaLabel()))
	b.WriteString("\n")

	// Tooltip under the pointer while hovering.
	if a.hover != nil {
		tip := tooltipStyle.Render(fmt.Sprintf("+%d%%", a.hover.Display))
		b.WriteString(components.OffsetPad(tip, a.hoverCol, a.width))
	}
	b.WriteString("\n")

	if a.showHelp {
		b.WriteString(" " + a.help.FullHelpView(a.keys.FullHelp()))
	} else {
		b.WriteString(" " + a.help.ShortHelpView(a.keys.ShortHelp()))
	}

	return a.zones.Scan(b.String())
}

// ariaLabel resolves the accessible description: explicit config, then the
// milestone title plus its metric label.
func (a *App) ariaLabel() string {
	if l := a.opts.Cfg.Spark.AriaLabel; l != "" {
		return l
	}
	entry := a.currentEntry()
	if a.hasModel {
		return fmt.Sprintf("%s, %s growth", entry.Title, a.model.Label)
	}
	return entry.Title
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
