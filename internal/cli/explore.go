package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/config"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags   chartFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore [file|-]",
		Short: "Browse a hierarchy and export a highlighted chart",
		Long: `Browse a hierarchy as a collapsible tree annotated with each node's
share of the whole. Press "s" on a node to write the chart with that node's
path highlighted, as 'render --selected' would.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.apply(cmd, cfg.PipelineOptions())
			if err := setInput(&opts, args); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), cfg, opts, inputName(args), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for the exported chart")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addInputFlags(cmd, &flags)
	addLayoutFlags(cmd, &flags)
	addRenderFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, cfg config.Config, opts pipeline.Options, input, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	l, _, err := c.computeLayout(ctx, cfg, opts, noCache)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newExploreModel(l, opts.ResolvedPalette()), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m, ok := final.(exploreModel)
	if !ok || m.chosen < 0 {
		return nil
	}

	opts.Selected = l.Slices[m.chosen].Name
	return c.runRender(ctx, cfg, opts, input, output, noCache)
}

// =============================================================================
// exploreModel - Interactive slice browser
// =============================================================================

// exploreModel lists slices in pre-order; children of collapsed slices are
// hidden.
type exploreModel struct {
	layout   sunburst.Layout
	palette  []string
	children [][]int
	expanded []bool
	visible  []int
	cursor   int // position in visible
	offset   int
	height   int
	chosen   int // slice index to export, -1 for none
}

func newExploreModel(l sunburst.Layout, palette []string) exploreModel {
	m := exploreModel{
		layout:   l,
		palette:  palette,
		children: make([][]int, len(l.Slices)),
		expanded: make([]bool, len(l.Slices)),
		height:   15,
		chosen:   -1,
	}
	for _, s := range l.Slices {
		if s.Parent != sunburst.NoParent {
			m.children[s.Parent] = append(m.children[s.Parent], s.Index)
		}
	}
	if len(l.Slices) > 0 {
		m.expanded[0] = true
	}
	m.refresh()
	return m
}

// refresh recomputes the visible rows, keeping the cursor on the same slice
// when it is still visible.
func (m *exploreModel) refresh() {
	current := -1
	if m.cursor < len(m.visible) {
		current = m.visible[m.cursor]
	}
	m.visible = m.visible[:0]
	var walk func(i int)
	walk = func(i int) {
		m.visible = append(m.visible, i)
		if !m.expanded[i] {
			return
		}
		for _, c := range m.children[i] {
			walk(c)
		}
	}
	if len(m.layout.Slices) > 0 {
		walk(0)
	}
	m.cursor = 0
	for pos, i := range m.visible {
		if i == current {
			m.cursor = pos
		}
	}
	m.scroll()
}

func (m *exploreModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// moveTo puts the cursor on slice i if it is visible.
func (m *exploreModel) moveTo(i int) {
	for pos, v := range m.visible {
		if v == i {
			m.cursor = pos
			m.scroll()
			return
		}
	}
}

// current returns the slice under the cursor, or -1.
func (m exploreModel) current() int {
	if m.cursor < len(m.visible) {
		return m.visible[m.cursor]
	}
	return -1
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		i := m.current()
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.scroll()
			}
		case "right", "l":
			if i >= 0 && len(m.children[i]) > 0 && !m.expanded[i] {
				m.expanded[i] = true
				m.refresh()
			}
		case "enter", " ":
			if i >= 0 && len(m.children[i]) > 0 {
				m.expanded[i] = !m.expanded[i]
				m.refresh()
			}
		case "left", "h":
			if i < 0 {
				break
			}
			if m.expanded[i] && len(m.children[i]) > 0 {
				m.expanded[i] = false
				m.refresh()
				break
			}
			m.moveTo(m.layout.Slices[i].Parent)
		case "s":
			if i >= 0 {
				m.chosen = i
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Hierarchy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ collapse/expand  s export highlighted  q quit"))
	b.WriteString("\n\n")

	cur := m.current()
	if cur < 0 {
		b.WriteString(listDimStyle.Render("  (empty hierarchy)"))
		return b.String()
	}

	b.WriteString(StyleHighlight.Render(trail(m.layout, m.layout.Path(cur))))
	b.WriteString("\n\n")

	total := m.layout.Slices[0].Value
	end := min(m.offset+m.height, len(m.visible))
	for pos := m.offset; pos < end; pos++ {
		i := m.visible[pos]
		s := m.layout.Slices[i]

		marker := "  "
		if pos == m.cursor {
			marker = "▸ "
		}
		fold := "  "
		if len(m.children[i]) > 0 {
			fold = "+ "
			if m.expanded[i] {
				fold = "- "
			}
		}
		line := fmt.Sprintf("%s%s%s %s  %s", marker, strings.Repeat("  ", s.Depth), fold, s.Name,
			listDimStyle.Render(formatValue(s.Value)+" · "+formatShare(s.Value, total)))

		b.WriteString(swatch(m.palette, i) + " ")
		if pos == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d visible · %d nodes]", m.cursor+1, len(m.visible), len(m.layout.Slices))))
	return b.String()
}
