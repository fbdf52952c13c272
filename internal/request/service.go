package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/ledger"
	"github.com/vintagechord/chorus/internal/metrics"
	"github.com/vintagechord/chorus/internal/promotion"
)

type Repository interface {
	Create(ctx context.Context, req *KaraokeRequest) error
	Get(ctx context.Context, id uuid.UUID) (*KaraokeRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*KaraokeRequest, error)

	// Fund debits the owner's ledger balance and increments the request's
	// funded credits as one atomic unit. The request is looked up scoped to
	// userID so users can only fund their own requests. referenceID is the
	// caller's idempotency key for the ledger entry.
	Fund(ctx context.Context, id, userID uuid.UUID, amount int64, referenceID uuid.UUID) (*KaraokeRequest, *ledger.Entry, error)

	Cancel(ctx context.Context, id, userID uuid.UUID) (*KaraokeRequest, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, costCredits int64, channels promotion.Channel) (*KaraokeRequest, error) {
	if costCredits <= 0 {
		return nil, ErrInvalidCost
	}

	req := &KaraokeRequest{
		UserID:      userID,
		CostCredits: costCredits,
		Channels:    channels,
		Status:      StatusOpen,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// Fund spends amount of the user's own ledger balance on their request.
// referenceID identifies the funding event: a retried call with the same id
// hits the ledger's uniqueness guard instead of debiting twice.
func (s *Service) Fund(ctx context.Context, id, userID uuid.UUID, amount int64, referenceID uuid.UUID) (*KaraokeRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if referenceID == uuid.Nil {
		return nil, ErrMissingReference
	}

	req, _, err := s.repo.Fund(ctx, id, userID, amount, referenceID)
	if err != nil {
		return nil, err
	}

	metrics.CreditsSpent.Add(float64(amount))
	if req.Status == StatusFunded {
		metrics.RequestsFunded.Inc()
	}

	return req, nil
}

// Cancel terminally withdraws an open request. No credit moved on the open
// path, so there is nothing to compensate.
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID) (*KaraokeRequest, error) {
	return s.repo.Cancel(ctx, id, userID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*KaraokeRequest, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*KaraokeRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}
