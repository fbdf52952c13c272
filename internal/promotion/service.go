package promotion

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	Get(ctx context.Context, id uuid.UUID) (*Promotion, error)
	ListActive(ctx context.Context, limit int) ([]*Promotion, error)
	Contribute(ctx context.Context, id uuid.UUID, amount int64) (applied int64, funded bool, err error)
	Close(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	SubmissionRef   string
	Title           string
	Artist          string
	CreditsRequired int64
	Channels        Channel
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Promotion, error) {
	if params.CreditsRequired <= 0 {
		return nil, ErrInvalidTarget
	}

	p := &Promotion{
		SubmissionRef:   params.SubmissionRef,
		Title:           params.Title,
		Artist:          params.Artist,
		CreditsRequired: params.CreditsRequired,
		Status:          StatusActive,
		Channels:        params.Channels,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	return s.repo.Get(ctx, id)
}

const defaultLeaderboardSize = 50

// ListActive returns active promotions ordered by accumulated credits,
// highest first.
func (s *Service) ListActive(ctx context.Context, limit int) ([]*Promotion, error) {
	if limit <= 0 || limit > defaultLeaderboardSize {
		limit = defaultLeaderboardSize
	}

	return s.repo.ListActive(ctx, limit)
}

// Contribute applies amount to the promotion pool outside of any recommendation
// approval. Approvals contribute through the verification store instead so the
// pool increment shares the approval's transaction.
func (s *Service) Contribute(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	if amount <= 0 {
		return 0, false, ErrInvalidAmount
	}

	return s.repo.Contribute(ctx, id, amount)
}

// Close withdraws an active promotion. FUNDED promotions are terminal and
// cannot be closed.
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	return s.repo.Close(ctx, id)
}
