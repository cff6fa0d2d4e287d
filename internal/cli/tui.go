package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/antcheck/pkg/antenna"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listBadStyle      = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// NetListModel - Interactive violated net browsing
// =============================================================================

// NetListModel is the bubbletea model for browsing violated nets.
type NetListModel struct {
	Nets   []antenna.NetResult
	Cursor int
	Height int
	Offset int

	// Open is the net whose gates are shown, nil on the list view.
	Open *antenna.NetResult
}

// NewNetListModel creates a new net list model.
func NewNetListModel(nets []antenna.NetResult) NetListModel {
	return NetListModel{
		Nets:   nets,
		Height: 15,
	}
}

func (m NetListModel) Init() tea.Cmd {
	return nil
}

func (m NetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.Open == nil {
				return m, tea.Quit
			}
			m.Open = nil
		case "up", "k":
			if m.Open == nil && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Open == nil && m.Cursor < len(m.Nets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Open == nil && len(m.Nets) > 0 {
				m.Open = &m.Nets[m.Cursor]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NetListModel) View() string {
	if m.Open != nil {
		return gateView(*m.Open)
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Violated Nets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ gates  q quit"))
	b.WriteString("\n\n")

	if len(m.Nets) == 0 {
		b.WriteString(StyleSuccess.Render("No antenna violations"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Nets))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, n.Net.Name, strconv.Itoa(len(n.Gates)), strconv.Itoa(n.ViolatedPins)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Net", "Gates", "Violated pins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nets))))

	return b.String()
}

// gateView lists every gate of a net with the records that reach it.
// Violated records are drawn red.
func gateView(n antenna.NetResult) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Net " + n.Net.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, g := range n.Gates {
		line := g.ITerm.Inst.Name + "  (" + g.ITerm.Inst.Master.Name + ")  " + g.ITerm.MTerm.Name
		if g.Violated {
			b.WriteString(listBadStyle.Render("✗ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
		for _, rec := range append(append([]antenna.RecordResult(nil), g.Wire...), g.Via...) {
			b.WriteString(recordLine(rec))
			b.WriteString("\n")
		}
	}
	return b.String()
}

var quantityNames = map[antenna.Quantity]string{
	antenna.QuantityPAR: "PAR",
	antenna.QuantityPSR: "PSR",
	antenna.QuantityCAR: "CAR",
	antenna.QuantityCSR: "CSR",
}

// recordLine prints value/limit for every check of rec that has a limit.
func recordLine(rec antenna.RecordResult) string {
	var parts []string
	for _, c := range rec.Checks {
		if c.Verdict == antenna.NotApplicable {
			continue
		}
		s := fmt.Sprintf("%s %.2f/%.2f", quantityNames[c.Quantity], c.Value, c.Limit)
		if c.Violated() {
			s = listBadStyle.Render(s)
		}
		parts = append(parts, s)
	}
	name := rec.Name
	if rec.IsVia {
		name += " (via)"
	}
	return "    " + listDimStyle.Render(fmt.Sprintf("%-12s", name)) + " " + strings.Join(parts, "  ")
}
