package recommendation

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/verification"
)

type recommendationResponse struct {
	ID             uuid.UUID           `json:"id"`
	PromotionID    uuid.UUID           `json:"promotion_id"`
	SubmitterID    uuid.UUID           `json:"submitter_id"`
	ProofReference string              `json:"proof_reference"`
	Status         verification.Status `json:"status"`
	CreditAwarded  *int64              `json:"credit_awarded,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	ResolvedAt     *time.Time          `json:"resolved_at,omitempty"`
}

func toResponse(rec *verification.Recommendation) recommendationResponse {
	return recommendationResponse{
		ID:             rec.ID,
		PromotionID:    rec.PromotionID,
		SubmitterID:    rec.SubmitterID,
		ProofReference: rec.ProofReference,
		Status:         rec.Status,
		CreditAwarded:  rec.CreditAwarded,
		CreatedAt:      rec.CreatedAt,
		ResolvedAt:     rec.ResolvedAt,
	}
}

type pendingResponse struct {
	recommendationResponse
	PromotionTitle  string `json:"promotion_title"`
	PromotionArtist string `json:"promotion_artist"`
}

func toPendingList(reviews []*verification.PendingReview) []pendingResponse {
	resp := make([]pendingResponse, len(reviews))
	for i, pr := range reviews {
		resp[i] = pendingResponse{
			recommendationResponse: toResponse(&pr.Recommendation),
			PromotionTitle:         pr.PromotionTitle,
			PromotionArtist:        pr.PromotionArtist,
		}
	}

	return resp
}

type approvalResponse struct {
	Recommendation  recommendationResponse `json:"recommendation"`
	CreditedAmount  int64                  `json:"credited_amount"`
	PoolApplied     int64                  `json:"pool_applied"`
	PromotionFunded bool                   `json:"promotion_funded"`
}

func toApprovalResponse(result *verification.ApprovalResult) approvalResponse {
	return approvalResponse{
		Recommendation:  toResponse(result.Recommendation),
		CreditedAmount:  result.Entry.Delta,
		PoolApplied:     result.PoolApplied,
		PromotionFunded: result.PromotionFunded,
	}
}
