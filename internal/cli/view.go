package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/flow"
)

// viewCommand creates the view command for browsing a flow graph.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [flow.json]",
		Short: "Browse a flow graph interactively",
		Long: `Browse a flow graph interactively.

Opens a terminal browser over the nodes of a flow JSON file. The list shows
each node's id, type, label, and degree; the pane below shows the outgoing
edges of the selected node with their branch labels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flow.ReadDataFile(args[0])
			if err != nil {
				return fmt.Errorf("load flow %s: %w", args[0], err)
			}

			model := newFlowViewModel(d)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// flowViewModel is the bubbletea model for the node browser.
type flowViewModel struct {
	data   flow.Data
	in     map[string]int
	out    map[string]int
	cursor int
	height int
	offset int
}

func newFlowViewModel(d flow.Data) flowViewModel {
	in, out := d.Degrees()
	return flowViewModel{
		data:   d,
		in:     in,
		out:    out,
		height: 15,
	}
}

func (m flowViewModel) Init() tea.Cmd {
	return nil
}

func (m flowViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.data.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m flowViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Flow Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.data.Nodes) {
		end = len(m.data.Nodes)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := m.data.Nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		degrees := fmt.Sprintf("%d/%d", m.in[n.ID], m.out[n.ID])
		pos := fmt.Sprintf("%.0f,%.0f", n.Position.X, n.Position.Y)
		rows = append(rows, []string{cursor, n.ID, string(n.Type), n.Label, degrees, pos})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Type", "Label", "In/Out", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.offset + row
			if actualIdx >= len(m.data.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if actualIdx == m.cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if m.data.Nodes[actualIdx].Type == flow.NodeDecision {
				return base.Foreground(colorYellow)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.edgePane())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.data.Nodes))))

	return b.String()
}

// edgePane lists the outgoing edges of the selected node.
func (m flowViewModel) edgePane() string {
	if len(m.data.Nodes) == 0 {
		return listDimStyle.Render("  (empty flow)")
	}
	n := m.data.Nodes[m.cursor]

	edges := m.data.OutEdges(n.ID)
	if len(edges) == 0 {
		return listDimStyle.Render(fmt.Sprintf("  %s has no outgoing edges", n.ID))
	}

	var b strings.Builder
	for _, e := range edges {
		target := e.Target
		if t := m.data.NodeByID(e.Target); t != nil && t.Label != "" {
			target = fmt.Sprintf("%s (%s)", t.Label, e.Target)
		}
		label := ""
		if e.Label != "" {
			label = " " + StyleWarning.Render("["+e.Label+"]")
		}
		b.WriteString(fmt.Sprintf("  %s %s%s\n", StyleDim.Render("→"), StyleValue.Render(target), label))
	}
	return strings.TrimRight(b.String(), "\n")
}
