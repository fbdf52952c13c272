package recommendation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/http/auth"
	"github.com/vintagechord/chorus/internal/http/respond"
	"github.com/vintagechord/chorus/internal/verification"
)

type Handler struct {
	svc *verification.Service
}

func NewHandler(svc *verification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/pending", h.listPending)
	r.Post("/{id}/approve", h.approve)
	r.Post("/{id}/reject", h.reject)
}

type submitRequest struct {
	PromotionID    uuid.UUID `json:"promotion_id"`
	ProofReference string    `json:"proof_reference"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	rec, err := h.svc.Submit(r.Context(), req.PromotionID, userID, req.ProofReference)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, err := h.svc.ListPending(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPendingList(reviews))
}

type approveRequest struct {
	CreditAmount int64 `json:"credit_amount"`
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	result, err := h.svc.Approve(r.Context(), id, req.CreditAmount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toApprovalResponse(result))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	rec, err := h.svc.Reject(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}
