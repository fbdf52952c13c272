package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/request"
)

type requestResponse struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	CostCredits   int64          `json:"cost_credits"`
	FundedCredits int64          `json:"funded_credits"`
	Channels      int            `json:"channels"`
	Status        request.Status `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toResponse(kr *request.KaraokeRequest) requestResponse {
	return requestResponse{
		ID:            kr.ID,
		UserID:        kr.UserID,
		CostCredits:   kr.CostCredits,
		FundedCredits: kr.FundedCredits,
		Channels:      int(kr.Channels),
		Status:        kr.Status,
		CreatedAt:     kr.CreatedAt,
	}
}

func toResponseList(reqs []*request.KaraokeRequest) []requestResponse {
	resp := make([]requestResponse, len(reqs))
	for i, kr := range reqs {
		resp[i] = toResponse(kr)
	}

	return resp
}
