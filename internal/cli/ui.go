package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gfagraph/pkg/schema"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorViolet = lipgloss.Color("141")
	colorBlue   = lipgloss.Color("75")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleError     = lipgloss.NewStyle().Foreground(colorRed)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// kindStyles colors records by role: segments, the lines connecting two
// segments, and the groups walking over them.
var kindStyles = map[schema.Kind]lipgloss.Style{
	schema.KindHeader:         StyleTitle,
	schema.KindComment:        StyleDim,
	schema.KindSegmentV1:      StyleValue.Bold(true),
	schema.KindSegmentV2:      StyleValue.Bold(true),
	schema.KindLink:           lipgloss.NewStyle().Foreground(colorBlue),
	schema.KindContainment:    lipgloss.NewStyle().Foreground(colorBlue),
	schema.KindEdge:           lipgloss.NewStyle().Foreground(colorBlue),
	schema.KindGap:            lipgloss.NewStyle().Foreground(colorBlue),
	schema.KindFragment:       lipgloss.NewStyle().Foreground(colorGray),
	schema.KindPath:           lipgloss.NewStyle().Foreground(colorViolet),
	schema.KindOrderedGroup:   lipgloss.NewStyle().Foreground(colorViolet),
	schema.KindUnorderedGroup: lipgloss.NewStyle().Foreground(colorViolet),
	schema.KindPlaceholder:    StyleWarning,
}

func kindStyle(k schema.Kind) lipgloss.Style {
	if s, ok := kindStyles[k]; ok {
		return s
	}
	return StyleValue
}

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printStatus(w io.Writer, icon string, iconStyle, msgStyle lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(w, iconStyle.Render(icon)+" "+msgStyle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(w io.Writer, format string, args ...any) {
	printStatus(w, iconSuccess, StyleSuccess, lipgloss.NewStyle(), format, args...)
}

func printError(w io.Writer, format string, args ...any) {
	printStatus(w, iconError, StyleError, lipgloss.NewStyle(), format, args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	printStatus(w, iconWarning, StyleWarning, StyleWarning, format, args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	printStatus(w, iconInfo, lipgloss.NewStyle().Foreground(colorGray), lipgloss.NewStyle(), format, args...)
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// newTable returns a rounded table with the shared header and border styles.
// Cells after the first column are counts.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col > 0 {
				return StyleNumber.PaddingLeft(1).PaddingRight(1)
			}
			return StyleValue.PaddingLeft(1).PaddingRight(1)
		})
}
