package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Reason identifies the business cause of a balance change.
type Reason string

const (
	ReasonEarnVerifiedRecommendation Reason = "EARN_VERIFIED_RECOMMENDATION"
	ReasonSpendRequestFunding        Reason = "SPEND_REQUEST_FUNDING"
	ReasonAdminAdjustment            Reason = "ADMIN_ADJUSTMENT"
)

// Account holds a user's spendable credit balance. The balance is only ever
// mutated together with an appended Entry, inside one database transaction.
type Account struct {
	UserID    uuid.UUID
	Balance   int64 // credits, 1 unit = 1 credit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is an immutable record of a single balance change. Seq captures
// commit order: entries for one account sorted by Seq reproduce the exact
// sequence of committed mutations.
type Entry struct {
	ID          uuid.UUID
	Seq         int64
	AccountID   uuid.UUID
	Delta       int64
	Reason      Reason
	ReferenceID uuid.UUID
	CreatedAt   time.Time
}
