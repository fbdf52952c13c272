package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/ledger"
)

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type entryResponse struct {
	ID          uuid.UUID     `json:"id"`
	Delta       int64         `json:"delta"`
	Reason      ledger.Reason `json:"reason"`
	ReferenceID uuid.UUID     `json:"reference_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

func toEntryResponse(e *ledger.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Delta:       e.Delta,
		Reason:      e.Reason,
		ReferenceID: e.ReferenceID,
		CreatedAt:   e.CreatedAt,
	}
}

func toEntryList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toEntryResponse(e)
	}

	return resp
}
