package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the funding lifecycle of a promotion.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFunded Status = "FUNDED"
	StatusClosed Status = "CLOSED"
)

// Channel is a bitmask of karaoke registration channels requested for the
// promoted submission.
type Channel int

const (
	ChannelTJ Channel = 1 << iota
	ChannelKY
)

var (
	ErrNotFound      = errors.New("promotion not found")
	ErrNotActive     = errors.New("promotion is not accepting contributions")
	ErrInvalidTarget = errors.New("credits required must be positive")
	ErrInvalidAmount = errors.New("contribution amount must be positive")
)

// Promotion is a submission seeking community-funded karaoke registration.
// Title and Artist are captured from the external catalog at creation and
// treated as immutable foreign data.
type Promotion struct {
	ID              uuid.UUID
	SubmissionRef   string
	Title           string
	Artist          string
	CreditsRequired int64
	CreditsBalance  int64
	Status          Status
	Channels        Channel
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FundingPercent reports progress toward the funding target.
func (p *Promotion) FundingPercent() float64 {
	if p.CreditsRequired == 0 {
		return 0
	}

	return float64(p.CreditsBalance) / float64(p.CreditsRequired) * 100
}

// ApplyContribution applies amount to the pool, clamped so the balance never
// exceeds the target. It returns how much of the contribution the pool
// absorbed and whether this contribution completed the funding. The stored
// promotion flips to FUNDED in the same step that brings the balance to the
// target, so callers persisting the result keep the transition atomic.
func (p *Promotion) ApplyContribution(amount int64) (applied int64, funded bool, err error) {
	if p.Status != StatusActive {
		return 0, false, ErrNotActive
	}

	remaining := p.CreditsRequired - p.CreditsBalance

	applied = amount
	if applied > remaining {
		applied = remaining
	}

	p.CreditsBalance += applied
	if p.CreditsBalance == p.CreditsRequired {
		p.Status = StatusFunded
		funded = true
	}

	return applied, funded, nil
}
