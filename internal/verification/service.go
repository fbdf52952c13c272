package verification

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/metrics"
)

type Repository interface {
	Create(ctx context.Context, rec *Recommendation) error
	Get(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListPending(ctx context.Context, limit int) ([]*PendingReview, error)

	// Approve resolves the recommendation, credits the submitter's ledger
	// account, and contributes to the promotion pool as one atomic unit.
	Approve(ctx context.Context, id uuid.UUID, creditAmount int64) (*ApprovalResult, error)

	Reject(ctx context.Context, id uuid.UUID) (*Recommendation, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var (
	ErrMissingProof = errors.New("proof reference is required")
	ErrInvalidAward = errors.New("credit amount must be positive")
)

// Submit records a user's recommendation proof for admin review. The target
// promotion must still be accepting contributions.
func (s *Service) Submit(ctx context.Context, promotionID, submitterID uuid.UUID, proofReference string) (*Recommendation, error) {
	if strings.TrimSpace(proofReference) == "" {
		return nil, ErrMissingProof
	}

	rec := &Recommendation{
		PromotionID:    promotionID,
		SubmitterID:    submitterID,
		ProofReference: proofReference,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// Approve grants creditAmount to the submitter and feeds the promotion pool.
// Calling it again on the same recommendation fails with ErrAlreadyResolved
// and has no effect.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, creditAmount int64) (*ApprovalResult, error) {
	if creditAmount <= 0 {
		return nil, ErrInvalidAward
	}

	result, err := s.repo.Approve(ctx, id, creditAmount)
	if err != nil {
		return nil, err
	}

	metrics.CreditsEarned.Add(float64(creditAmount))
	if result.PromotionFunded {
		metrics.PromotionsFunded.Inc()
	}

	return result, nil
}

// Reject marks the recommendation REJECTED. No credit moves.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return s.repo.Reject(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	return s.repo.Get(ctx, id)
}

const defaultQueueSize = 100

// ListPending returns the admin review queue, oldest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]*PendingReview, error) {
	if limit <= 0 || limit > defaultQueueSize {
		limit = defaultQueueSize
	}

	return s.repo.ListPending(ctx, limit)
}
