package request

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/promotion"
)

// Status represents the lifecycle of a karaoke registration request.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusFunded    Status = "FUNDED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrNotFound         = errors.New("karaoke request not found")
	ErrNotOpen          = errors.New("karaoke request is not open")
	ErrOverfunding      = errors.New("amount exceeds remaining cost")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidCost      = errors.New("cost must be positive")
	ErrMissingReference = errors.New("funding reference id is required")
)

// KaraokeRequest is a user's own registration ask, funded from their
// personal ledger balance. CostCredits is fixed at creation.
type KaraokeRequest struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CostCredits   int64
	FundedCredits int64
	Channels      promotion.Channel
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining reports the credits still needed to fully fund the request.
func (r *KaraokeRequest) Remaining() int64 {
	return r.CostCredits - r.FundedCredits
}

// ApplyFunding applies amount toward the remaining cost. Unlike promotion
// pool contributions, overshoot is rejected rather than clamped: this is a
// direct user-initiated spend and silently clamping would mask a client-side
// accounting error. The request flips to FUNDED in the same step that closes
// the remaining cost.
func (r *KaraokeRequest) ApplyFunding(amount int64) (funded bool, err error) {
	if r.Status != StatusOpen {
		return false, ErrNotOpen
	}

	if amount <= 0 {
		return false, ErrInvalidAmount
	}

	if amount > r.Remaining() {
		return false, ErrOverfunding
	}

	r.FundedCredits += amount
	if r.FundedCredits == r.CostCredits {
		r.Status = StatusFunded
		funded = true
	}

	return funded, nil
}
