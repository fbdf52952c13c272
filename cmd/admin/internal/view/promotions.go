package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vintagechord/chorus/internal/promotion"
)

type PromotionsModel struct {
	CommonModel
	svc *promotion.Service

	table      table.Model
	promotions []*promotion.Promotion

	loading bool
	err     error
}

func NewPromotionsModel(svc *promotion.Service) PromotionsModel {
	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Artist", Width: 20},
		{Title: "Pool", Width: 10},
		{Title: "Target", Width: 10},
		{Title: "Progress", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PromotionsModel{
		svc:   svc,
		table: t,
	}
}

func (m PromotionsModel) Title() string     { return "Promotion Leaderboard" }
func (m PromotionsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m PromotionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PromotionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPromotionsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.promotions = msg.promotions
		m.err = nil
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PromotionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading promotions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *PromotionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.promotions))
	for _, p := range m.promotions {
		rows = append(rows, table.Row{
			p.Title,
			p.Artist,
			FormatCredits(p.CreditsBalance),
			FormatCredits(p.CreditsRequired),
			fmt.Sprintf("%.0f%%", p.FundingPercent()),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPromotionsMsg struct {
	promotions []*promotion.Promotion
	err        error
}

func (m PromotionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		promotions, err := m.svc.ListActive(ctx, 0)
		return loadPromotionsMsg{promotions: promotions, err: err}
	}
}
