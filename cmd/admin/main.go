package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/vintagechord/chorus/cmd/admin/internal/view"
	"github.com/vintagechord/chorus/internal/config"
	"github.com/vintagechord/chorus/internal/database"
	"github.com/vintagechord/chorus/internal/promotion"
	promotionStore "github.com/vintagechord/chorus/internal/promotion/store"
	"github.com/vintagechord/chorus/internal/verification"
	verificationStore "github.com/vintagechord/chorus/internal/verification/store"
)

type model struct {
	verificationService *verification.Service
	promotionService    *promotion.Service
	defaultAward        int64

	currentView View

	reviewView     view.ReviewModel
	promotionsView view.PromotionsModel
}

type View int

const (
	ViewMenu       View = 0
	ViewReview     View = 1
	ViewPromotions View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	verificationSvc := verification.NewService(verificationStore.New(db))
	promotionSvc := promotion.NewService(promotionStore.New(db))

	return model{
		verificationService: verificationSvc,
		promotionService:    promotionSvc,
		defaultAward:        cfg.Review.DefaultAward,
		currentView:         ViewMenu,
		reviewView:          view.NewReviewModel(verificationSvc, cfg.Review.DefaultAward),
		promotionsView:      view.NewPromotionsModel(promotionSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.verificationService, m.defaultAward)

				return m, m.reviewView.Init()
			case "2":
				m.currentView = ViewPromotions
				m.promotionsView = view.NewPromotionsModel(m.promotionService)

				return m, m.promotionsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewPromotions:
		var newModel tea.Model
		newModel, cmd = m.promotionsView.Update(msg)
		m.promotionsView = newModel.(view.PromotionsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Chorus Admin\n\n" +
				"1. Review Pending Recommendations\n" +
				"2. Promotion Leaderboard\n\n" +
				"q. Quit",
		)
	case ViewReview:
		return m.reviewView.View()
	case ViewPromotions:
		return m.promotionsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
