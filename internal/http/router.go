package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vintagechord/chorus/internal/http/auth"
	ledgerHandler "github.com/vintagechord/chorus/internal/http/ledger"
	promotionHandler "github.com/vintagechord/chorus/internal/http/promotion"
	recommendationHandler "github.com/vintagechord/chorus/internal/http/recommendation"
	requestHandler "github.com/vintagechord/chorus/internal/http/request"
)

func New(
	authMW *auth.Middleware,
	corsOrigins []string,
	ledgerV1 *ledgerHandler.Handler,
	promotionV1 *promotionHandler.Handler,
	recommendationV1 *recommendationHandler.Handler,
	requestV1 *requestHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		// Public read views.
		r.Route("/promotions", func(r chi.Router) {
			promotionV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Authenticate, auth.RequireAdmin)
				promotionV1.AdminRoutes(r)
			})
		})

		// Authenticated user surface.
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Route("/ledger", func(r chi.Router) {
				ledgerV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					ledgerV1.AdminRoutes(r)
				})
			})

			r.Route("/recommendations", func(r chi.Router) {
				recommendationV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					recommendationV1.AdminRoutes(r)
				})
			})

			r.Route("/requests", requestV1.Routes)
		})
	})

	return router
}
