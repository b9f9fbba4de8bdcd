package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/palletizer/pkg/core/model"
	"github.com/matzehuels/palletizer/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlanBrowserModel - Interactive container browser
// =============================================================================

// PlanBrowserModel is the bubbletea model for browsing the containers of a
// plan. Enter opens a container, esc goes back to the list.
type PlanBrowserModel struct {
	Plan   *pipeline.Plan
	IDs    []model.ContainerID
	Cursor int
	Height int
	Offset int

	// Open is true while a single container is shown.
	Open bool
}

// NewPlanBrowserModel creates a browser over the containers of plan.
func NewPlanBrowserModel(plan *pipeline.Plan) PlanBrowserModel {
	return PlanBrowserModel{
		Plan:   plan,
		IDs:    plan.ContainerIDs(),
		Height: 15,
	}
}

func (m PlanBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PlanBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "backspace":
			if !m.Open {
				return m, tea.Quit
			}
			m.Open = false
		case "up", "k":
			if !m.Open && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Open && m.Cursor < len(m.IDs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.IDs) > 0 {
				m.Open = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlanBrowserModel) View() string {
	if len(m.IDs) == 0 {
		return StyleTitle.Render("Containers") + "\n\n" + listDimStyle.Render("  no containers · q quit") + "\n"
	}
	if m.Open {
		return m.detailView()
	}
	return m.listView()
}

func (m PlanBrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Containers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.IDs))
	for i := m.Offset; i < end; i++ {
		id := m.IDs[i]
		origin := m.Plan.Origins[id]
		contents := m.Plan.Caixas[id]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s#%-4d %-12s %-7s %5d units  %s",
			cursor, id, origin.Box, origin.Stage, contents.Total(),
			listDimStyle.Render(summarizeContents(contents, 2)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.IDs))))
	return b.String()
}

func (m PlanBrowserModel) detailView() string {
	id := m.IDs[m.Cursor]
	origin := m.Plan.Origins[id]
	contents := m.Plan.Caixas[id]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Container %d", id)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %s stage · partition %d", origin.Box, origin.Stage, origin.Partition)))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(contents))
	for _, sku := range model.SortedKeys(contents) {
		rows = append(rows, []string{sku, strconv.Itoa(contents[sku])})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("SKU", "Units").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 1 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d units · esc back  q quit", contents.Total())))
	return b.String()
}
