package ledger

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// Apply atomically appends an entry and moves the account balance by
	// delta. It fails with ErrInsufficientBalance if the resulting balance
	// would be negative, and with ErrDuplicateTransaction if an entry with
	// the same (reason, referenceID) pair was already committed.
	Apply(ctx context.Context, accountID uuid.UUID, delta int64, reason Reason, referenceID uuid.UUID) (*Entry, error)

	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
	Entries(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Credit grants amount credits to the account. The account row is created on
// first credit.
func (s *Service) Credit(ctx context.Context, accountID uuid.UUID, amount int64, reason Reason, referenceID uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.repo.Apply(ctx, accountID, amount, reason, referenceID)
}

// Debit removes amount credits from the account.
func (s *Service) Debit(ctx context.Context, accountID uuid.UUID, amount int64, reason Reason, referenceID uuid.UUID) (*Entry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return s.repo.Apply(ctx, accountID, -amount, reason, referenceID)
}

// Adjust applies a signed admin correction. It goes through the same
// balance guard as any other movement, so a negative adjustment cannot
// overdraw the account.
func (s *Service) Adjust(ctx context.Context, accountID uuid.UUID, delta int64, referenceID uuid.UUID) (*Entry, error) {
	if delta == 0 {
		return nil, ErrInvalidAmount
	}

	return s.repo.Apply(ctx, accountID, delta, ReasonAdminAdjustment, referenceID)
}

// Balance returns the current committed balance. Accounts that have never
// been credited report zero.
func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return s.repo.Balance(ctx, accountID)
}

const defaultPageSize = 20

// Entries returns the account's transaction history in reverse commit
// order. Pages are 1-based.
func (s *Service) Entries(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*Entry, error) {
	if perPage <= 0 {
		perPage = defaultPageSize
	}

	if page < 1 {
		page = 1
	}

	return s.repo.Entries(ctx, accountID, perPage, (page-1)*perPage)
}
