package promotion

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/http/respond"
	"github.com/vintagechord/chorus/internal/promotion"
)

type Handler struct {
	svc *promotion.Service
}

func NewHandler(svc *promotion.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/{id}/close", h.close)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	promotions, err := h.svc.ListActive(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(promotions))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type createPromotionRequest struct {
	SubmissionRef   string `json:"submission_ref"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	CreditsRequired int64  `json:"credits_required"`
	Channels        int    `json:"channels"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), promotion.CreateParams{
		SubmissionRef:   req.SubmissionRef,
		Title:           req.Title,
		Artist:          req.Artist,
		CreditsRequired: req.CreditsRequired,
		Channels:        promotion.Channel(req.Channels),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.Close(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
