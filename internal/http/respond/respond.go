// Package respond writes JSON responses and maps domain errors onto the
// stable error codes exposed to the UI layer.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vintagechord/chorus/internal/ledger"
	"github.com/vintagechord/chorus/internal/promotion"
	"github.com/vintagechord/chorus/internal/request"
	"github.com/vintagechord/chorus/internal/verification"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{Code: "BAD_REQUEST", Message: message}})
}

var errorCodes = []struct {
	match  error
	status int
	code   string
}{
	{ledger.ErrInsufficientBalance, http.StatusConflict, "INSUFFICIENT_BALANCE"},
	{ledger.ErrDuplicateTransaction, http.StatusConflict, "DUPLICATE_TRANSACTION"},
	{promotion.ErrNotActive, http.StatusConflict, "PROMOTION_NOT_ACTIVE"},
	{verification.ErrAlreadyResolved, http.StatusConflict, "ALREADY_RESOLVED"},
	{request.ErrNotOpen, http.StatusConflict, "REQUEST_NOT_OPEN"},
	{request.ErrOverfunding, http.StatusUnprocessableEntity, "OVERFUNDING_REJECTED"},
	{promotion.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{verification.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{request.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ledger.ErrInvalidAmount, http.StatusBadRequest, "BAD_REQUEST"},
	{promotion.ErrInvalidTarget, http.StatusBadRequest, "BAD_REQUEST"},
	{promotion.ErrInvalidAmount, http.StatusBadRequest, "BAD_REQUEST"},
	{request.ErrInvalidAmount, http.StatusBadRequest, "BAD_REQUEST"},
	{request.ErrInvalidCost, http.StatusBadRequest, "BAD_REQUEST"},
	{request.ErrMissingReference, http.StatusBadRequest, "BAD_REQUEST"},
	{verification.ErrMissingProof, http.StatusBadRequest, "BAD_REQUEST"},
	{verification.ErrInvalidAward, http.StatusBadRequest, "BAD_REQUEST"},
}

// Error maps a domain error onto its stable code. Unrecognized errors are
// logged and reported as INTERNAL without detail.
func Error(w http.ResponseWriter, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.match) {
			JSON(w, e.status, errorEnvelope{Error: errorBody{Code: e.code, Message: e.match.Error()}})
			return
		}
	}

	slog.Error("internal error", "error", err)
	JSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{Code: "INTERNAL", Message: "internal error"}})
}
