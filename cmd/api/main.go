package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vintagechord/chorus/internal/config"
	"github.com/vintagechord/chorus/internal/database"
	chorusHttp "github.com/vintagechord/chorus/internal/http"
	"github.com/vintagechord/chorus/internal/http/auth"
	ledgerHandler "github.com/vintagechord/chorus/internal/http/ledger"
	promotionHandler "github.com/vintagechord/chorus/internal/http/promotion"
	recommendationHandler "github.com/vintagechord/chorus/internal/http/recommendation"
	requestHandler "github.com/vintagechord/chorus/internal/http/request"
	"github.com/vintagechord/chorus/internal/ledger"
	ledgerStore "github.com/vintagechord/chorus/internal/ledger/store"
	"github.com/vintagechord/chorus/internal/promotion"
	promotionStore "github.com/vintagechord/chorus/internal/promotion/store"
	"github.com/vintagechord/chorus/internal/request"
	requestStore "github.com/vintagechord/chorus/internal/request/store"
	"github.com/vintagechord/chorus/internal/verification"
	verificationStore "github.com/vintagechord/chorus/internal/verification/store"
)

func main() {
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
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService       = ledger.NewService(ledgerStore.New(db))
		promotionService    = promotion.NewService(promotionStore.New(db))
		verificationService = verification.NewService(verificationStore.New(db))
		requestService      = request.NewService(requestStore.New(db))
	)

	var (
		ledgerH         = ledgerHandler.NewHandler(ledgerService)
		promotionH      = promotionHandler.NewHandler(promotionService)
		recommendationH = recommendationHandler.NewHandler(verificationService)
		requestH        = requestHandler.NewHandler(requestService)
	)

	authMW := auth.NewMiddleware(cfg.Auth.JWTSecret)
	router := chorusHttp.New(authMW, cfg.CORS.Origins, ledgerH, promotionH, recommendationH, requestH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
