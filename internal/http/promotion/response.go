package promotion

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/promotion"
)

type promotionResponse struct {
	ID              uuid.UUID        `json:"id"`
	SubmissionRef   string           `json:"submission_ref"`
	Title           string           `json:"title"`
	Artist          string           `json:"artist"`
	CreditsRequired int64            `json:"credits_required"`
	CreditsBalance  int64            `json:"credits_balance"`
	FundingPercent  float64          `json:"funding_percent"`
	Status          promotion.Status `json:"status"`
	Channels        int              `json:"channels"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toResponse(p *promotion.Promotion) promotionResponse {
	return promotionResponse{
		ID:              p.ID,
		SubmissionRef:   p.SubmissionRef,
		Title:           p.Title,
		Artist:          p.Artist,
		CreditsRequired: p.CreditsRequired,
		CreditsBalance:  p.CreditsBalance,
		FundingPercent:  p.FundingPercent(),
		Status:          p.Status,
		Channels:        int(p.Channels),
		CreatedAt:       p.CreatedAt,
	}
}

func toResponseList(promotions []*promotion.Promotion) []promotionResponse {
	resp := make([]promotionResponse, len(promotions))
	for i, p := range promotions {
		resp[i] = toResponse(p)
	}

	return resp
}
