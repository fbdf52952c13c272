package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vintagechord/chorus/internal/verification"
)

type reviewState int

const (
	reviewStateBrowse reviewState = iota
	reviewStateApprove
	reviewStateReject
)

type ReviewModel struct {
	CommonModel
	svc          *verification.Service
	defaultAward int64

	state reviewState
	table table.Model
	queue []*verification.PendingReview
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount  string
	formConfirm bool
}

func NewReviewModel(svc *verification.Service, defaultAward int64) ReviewModel {
	columns := []table.Column{
		{Title: "Submitted", Width: 12},
		{Title: "Promotion", Width: 32},
		{Title: "Artist", Width: 20},
		{Title: "Proof", Width: 36},
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

	return ReviewModel{
		svc:          svc,
		defaultAward: defaultAward,
		table:        t,
	}
}

func (m ReviewModel) Title() string { return "Pending Recommendations" }
func (m ReviewModel) ShortHelp() string {
	if m.state != reviewStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: approve | x: reject | r: refresh"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadQueueCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.queue = msg.queue
		m.err = nil
		m.refreshTable()
		return m, nil

	case resolveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.summary
		}
		m.state = reviewStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadQueueCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case reviewStateBrowse:
		return m.updateBrowse(msg)
	case reviewStateApprove, reviewStateReject:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ReviewModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadQueueCmd()
		case "a":
			return m.enterApprove()
		case "x":
			return m.enterReject()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReviewModel) enterApprove() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formAmount = strconv.FormatInt(m.defaultAward, 10)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Credit Award").
				Value(&m.formAmount).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive credit amount")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = reviewStateApprove
	m.table.Blur()
	return m, m.form.Init()
}

func (m ReviewModel) enterReject() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formConfirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Reject this recommendation?").
				Value(&m.formConfirm),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = reviewStateReject
	m.table.Blur()
	return m, m.form.Init()
}

func (m ReviewModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = reviewStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == reviewStateReject && !m.formConfirm {
		m.state = reviewStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	if m.state == reviewStateApprove {
		return m, m.approveCmd()
	}

	return m, m.rejectCmd()
}

func (m ReviewModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading pending recommendations...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state != reviewStateBrowse && m.form != nil {
		title := "Approve Recommendation"
		if m.state == reviewStateReject {
			title = "Reject Recommendation"
		}

		detail := ""
		if pr := m.selected(); pr != nil {
			detail = fmt.Sprintf("%s - %s\nProof: %s", pr.PromotionTitle, pr.PromotionArtist, pr.ProofReference)
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, detail, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ReviewModel) selected() *verification.PendingReview {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.queue) {
		return nil
	}

	return m.queue[idx]
}

func (m *ReviewModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.queue))
	for _, pr := range m.queue {
		rows = append(rows, table.Row{
			FormatDate(pr.CreatedAt),
			pr.PromotionTitle,
			pr.PromotionArtist,
			pr.ProofReference,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadQueueMsg struct {
	queue []*verification.PendingReview
	err   error
}

func (m ReviewModel) loadQueueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		queue, err := m.svc.ListPending(ctx, 0)
		return loadQueueMsg{queue: queue, err: err}
	}
}

type resolveMsg struct {
	summary string
	err     error
}

func (m ReviewModel) approveCmd() tea.Cmd {
	pr := m.selected()
	if pr == nil {
		return nil
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(m.formAmount), 10, 64)
	if err != nil {
		return func() tea.Msg { return resolveMsg{err: err} }
	}

	id := pr.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.svc.Approve(ctx, id, amount)
		if err != nil {
			return resolveMsg{err: err}
		}

		summary := fmt.Sprintf("Approved: credited %s, pool +%s",
			FormatCredits(result.Entry.Delta), FormatCredits(result.PoolApplied))
		if result.PromotionFunded {
			summary += " (promotion funded)"
		}

		return resolveMsg{summary: summary}
	}
}

func (m ReviewModel) rejectCmd() tea.Cmd {
	pr := m.selected()
	if pr == nil {
		return nil
	}

	id := pr.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.svc.Reject(ctx, id); err != nil {
			return resolveMsg{err: err}
		}

		return resolveMsg{summary: "Rejected"}
	}
}
