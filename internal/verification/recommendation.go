package verification

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/ledger"
)

// Status represents the review state of a recommendation. APPROVED and
// REJECTED are terminal.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var (
	ErrNotFound        = errors.New("recommendation not found")
	ErrAlreadyResolved = errors.New("recommendation already resolved")
)

// Recommendation is a user's proof of having promoted a promotion, awaiting
// admin verification. ProofReference points into external object storage and
// is never dereferenced by the engine.
type Recommendation struct {
	ID             uuid.UUID
	PromotionID    uuid.UUID
	SubmitterID    uuid.UUID
	ProofReference string
	Status         Status
	CreditAwarded  *int64
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// PendingReview is a pending recommendation joined with the catalog metadata
// of its promotion, as shown in the admin queue.
type PendingReview struct {
	Recommendation
	PromotionTitle  string
	PromotionArtist string
}

// ApprovalResult describes everything a successful approval committed in one
// transaction: the resolved recommendation, the ledger credit, and the pool
// contribution (clamped, possibly completing the promotion's funding).
type ApprovalResult struct {
	Recommendation  *Recommendation
	Entry           *ledger.Entry
	PoolApplied     int64
	PromotionFunded bool
}
