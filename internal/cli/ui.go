package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// stdout receives all user-facing output; tests swap it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Colors and Styles
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // primary
	colorGreen = lipgloss.Color("35")  // success, cache hits
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // commands
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for headings and ancestor trails.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleValue    = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(16)
	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
	styleTableNumber = lipgloss.NewStyle().Foreground(colorGray).Align(lipgloss.Right)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSwatch  = "■"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// stage is one pipeline stage in a summary line.
type stage struct {
	name   string
	cached bool
}

// printSummary prints e.g. "7 nodes · 3 rings · layout cached · render fresh".
func printSummary(nodes, rings int, stages ...stage) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("%d rings", rings)),
	}
	for _, s := range stages {
		if s.cached {
			parts = append(parts, StyleDim.Render(s.name+" ")+styleCached.Render(iconCached))
		} else {
			parts = append(parts, StyleDim.Render(s.name+" ")+styleComputed.Render(iconFresh))
		}
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// =============================================================================
// Slice Formatting
// =============================================================================

// swatch renders a square in the fill colour the chart gives slice i.
func swatch(palette []string, i int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(styles.ColorAt(palette, i))).Render(iconSwatch)
}

// trail joins the names of the given slices with arrows.
func trail(l sunburst.Layout, path []int) string {
	names := make([]string, len(path))
	for j, i := range path {
		names[j] = l.Slices[i].Name
	}
	return strings.Join(names, " "+iconArrow+" ")
}

// formatValue prints whole values without a fraction.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// formatShare prints v as a percentage of total, or "-" for an empty total.
func formatShare(v, total float64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*v/total)
}
