package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gfagraph/pkg/graph"
	"github.com/matzehuels/gfagraph/pkg/record"
	"github.com/matzehuels/gfagraph/pkg/schema"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// maxLabel truncates record lines in the list.
const maxLabel = 48

// =============================================================================
// BrowseModel - Interactive record browser
// =============================================================================

// BrowseModel is the bubbletea model for browsing the records of a graph
// together with what they reference and what depends on them.
type BrowseModel struct {
	Graph   *graph.Graph
	Records []*record.Record
	Cursor  int
	Height  int
	Offset  int

	// history holds cursor positions to return to after following a reference.
	history []int
}

// NewBrowseModel lists the records of g followed by its placeholders.
func NewBrowseModel(g *graph.Graph) BrowseModel {
	return BrowseModel{
		Graph:   g,
		Records: append(g.Records(), g.Placeholders()...),
		Height:  15,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Records) - 1)
		case "enter", "right", "l":
			m.follow()
		case "backspace", "left", "h":
			if n := len(m.history); n > 0 {
				m.moveTo(m.history[n-1])
				m.history = m.history[:n-1]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo places the cursor on i and scrolls it into view.
func (m *BrowseModel) moveTo(i int) {
	if len(m.Records) == 0 {
		return
	}
	m.Cursor = max(0, min(i, len(m.Records)-1))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// follow jumps to the first record referenced by the selected one.
func (m *BrowseModel) follow() {
	if m.Cursor >= len(m.Records) {
		return
	}
	refs, err := m.Records[m.Cursor].References()
	if err != nil || len(refs) == 0 {
		return
	}
	target, ok := m.Graph.Lookup(refs[0].Name)
	if !ok {
		return
	}
	if i := slices.Index(m.Records, target); i >= 0 {
		m.history = append(m.history, m.Cursor)
		m.moveTo(i)
	}
}

// Selected returns the record under the cursor, or nil for an empty graph.
func (m BrowseModel) Selected() *record.Record {
	if m.Cursor < len(m.Records) {
		return m.Records[m.Cursor]
	}
	return nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Records"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow reference  ← back  q quit"))
	b.WriteString("\n\n")

	if len(m.Records) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		return b.String()
	}

	var list strings.Builder
	end := min(m.Offset+m.Height, len(m.Records))
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + recordLabel(r)
		switch {
		case i == m.Cursor:
			list.WriteString(listSelectedStyle.Render(line))
		case r.Virtual():
			list.WriteString(listDimStyle.Render(line))
		default:
			list.WriteString(kindStyle(r.Kind()).Render(line))
		}
		list.WriteString("\n")
	}
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	detail := detailBoxStyle.Render(m.detail(m.Records[m.Cursor]))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	return b.String()
}

// detail describes one record: its line, its references and its dependents.
func (m BrowseModel) detail(r *record.Record) string {
	var b strings.Builder
	title := string(r.Kind())
	if name := r.Name(); name != "" {
		title += " " + name
	}
	b.WriteString(StyleHighlight.Render(title))
	b.WriteString("\n")
	if r.Virtual() {
		b.WriteString(StyleWarning.Render("referenced but not defined"))
		b.WriteString("\n")
	} else {
		b.WriteString(listDimStyle.Render(truncate(r.String(), 2*maxLabel)))
		b.WriteString("\n")
	}

	if err := r.Validate(); err != nil {
		b.WriteString(StyleError.Render(err.Error()))
		b.WriteString("\n")
	}

	if refs, err := r.References(); err == nil && len(refs) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("References"))
		b.WriteString("\n")
		for _, ref := range refs {
			status := StyleSuccess.Render(iconSuccess)
			if t, ok := m.Graph.Lookup(ref.Name); !ok || t.Virtual() {
				status = StyleWarning.Render(iconWarning)
			}
			fmt.Fprintf(&b, "%s %s %s %s %s\n", status, ref.Field, iconArrow, ref.Name, listDimStyle.Render(string(ref.Category)))
		}
	}

	var deps []string
	for _, c := range schema.AllCategories() {
		if list := r.Dependents(c); len(list) > 0 {
			deps = append(deps, fmt.Sprintf("%s %s", listDimStyle.Render(string(c)), StyleNumber.Render(fmt.Sprint(len(list)))))
		}
	}
	if len(deps) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Dependents"))
		b.WriteString("\n")
		b.WriteString(strings.Join(deps, "\n"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// =============================================================================
// Helpers
// =============================================================================

func recordLabel(r *record.Record) string {
	if r.Virtual() {
		return "? " + r.Name()
	}
	return truncate(r.String(), maxLabel)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\t", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "browse FILE",
		Short:             "Browse records and their references interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGFAFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewBrowseModel(g), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
