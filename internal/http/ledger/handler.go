package ledger

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/http/auth"
	"github.com/vintagechord/chorus/internal/http/respond"
	"github.com/vintagechord/chorus/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balance", h.balance)
	r.Get("/transactions", h.transactions)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/adjust", h.adjust)
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	entries, err := h.svc.Entries(r.Context(), userID, page, perPage)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toEntryList(entries))
}

type adjustRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	Delta       int64     `json:"delta"`
	ReferenceID uuid.UUID `json:"reference_id"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	entry, err := h.svc.Adjust(r.Context(), req.UserID, req.Delta, req.ReferenceID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toEntryResponse(entry))
}
