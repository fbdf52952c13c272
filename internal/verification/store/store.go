package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/ledger"
	ledgerstore "github.com/vintagechord/chorus/internal/ledger/store"
	"github.com/vintagechord/chorus/internal/promotion"
	promotionstore "github.com/vintagechord/chorus/internal/promotion/store"
	"github.com/vintagechord/chorus/internal/verification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectRecommendationColumns = `
	id, promotion_id, submitter_id, proof_reference, status, credit_awarded,
	created_at, resolved_at
`

func scanRecommendation(s scanner) (*verification.Recommendation, error) {
	var rec verification.Recommendation

	var statusStr string

	if err := s.Scan(
		&rec.ID, &rec.PromotionID, &rec.SubmitterID, &rec.ProofReference, &statusStr,
		&rec.CreditAwarded, &rec.CreatedAt, &rec.ResolvedAt,
	); err != nil {
		return nil, err
	}

	rec.Status = verification.Status(statusStr)

	return &rec, nil
}

// Create inserts a PENDING recommendation after confirming its promotion is
// still ACTIVE, in one transaction so a concurrent funding flip cannot slip
// between the check and the insert.
func (s *Store) Create(ctx context.Context, rec *verification.Recommendation) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var statusStr string

	err = dbTx.QueryRowContext(ctx,
		`SELECT status FROM promotions WHERE id = $1 FOR SHARE`, rec.PromotionID,
	).Scan(&statusStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return promotion.ErrNotFound
		}

		return fmt.Errorf("checking promotion: %w", err)
	}

	if promotion.Status(statusStr) != promotion.StatusActive {
		return promotion.ErrNotActive
	}

	insertQuery := `
		INSERT INTO recommendations (promotion_id, submitter_id, proof_reference, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		rec.PromotionID,
		rec.SubmitterID,
		rec.ProofReference,
		rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating recommendation: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*verification.Recommendation, error) {
	query := `SELECT ` + selectRecommendationColumns + ` FROM recommendations WHERE id = $1`

	rec, err := scanRecommendation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, verification.ErrNotFound
		}

		return nil, fmt.Errorf("getting recommendation: %w", err)
	}

	return rec, nil
}

func (s *Store) ListPending(ctx context.Context, limit int) ([]*verification.PendingReview, error) {
	query := `
		SELECT r.id, r.promotion_id, r.submitter_id, r.proof_reference, r.status,
			r.credit_awarded, r.created_at, r.resolved_at, p.title, p.artist
		FROM recommendations r
		JOIN promotions p ON r.promotion_id = p.id
		WHERE r.status = $1
		ORDER BY r.created_at ASC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, verification.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("listing pending recommendations: %w", err)
	}
	defer rows.Close()

	var reviews []*verification.PendingReview

	for rows.Next() {
		var pr verification.PendingReview

		var statusStr string

		if err := rows.Scan(
			&pr.ID, &pr.PromotionID, &pr.SubmitterID, &pr.ProofReference, &statusStr,
			&pr.CreditAwarded, &pr.CreatedAt, &pr.ResolvedAt, &pr.PromotionTitle, &pr.PromotionArtist,
		); err != nil {
			return nil, fmt.Errorf("scanning pending recommendation: %w", err)
		}

		pr.Status = verification.Status(statusStr)
		reviews = append(reviews, &pr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending recommendations: %w", err)
	}

	return reviews, nil
}

// Approve resolves the recommendation and performs the ledger credit and the
// pool contribution in the same database transaction. The row lock on the
// recommendation makes the PENDING check and the terminal transition
// mutually exclusive with concurrent approvals; a retry that slips past it
// is still caught by the ledger's (reason, reference_id) uniqueness guard.
func (s *Store) Approve(ctx context.Context, id uuid.UUID, creditAmount int64) (*verification.ApprovalResult, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	lockQuery := `SELECT ` + selectRecommendationColumns + ` FROM recommendations WHERE id = $1 FOR UPDATE`

	rec, err := scanRecommendation(dbTx.QueryRowContext(ctx, lockQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, verification.ErrNotFound
		}

		return nil, fmt.Errorf("locking recommendation: %w", err)
	}

	if rec.Status != verification.StatusPending {
		return nil, verification.ErrAlreadyResolved
	}

	resolveQuery := `
		UPDATE recommendations
		SET status = $2, credit_awarded = $3, resolved_at = NOW()
		WHERE id = $1
		RETURNING resolved_at
	`

	err = dbTx.QueryRowContext(ctx, resolveQuery, id, verification.StatusApproved, creditAmount).
		Scan(&rec.ResolvedAt)
	if err != nil {
		return nil, fmt.Errorf("resolving recommendation: %w", err)
	}

	rec.Status = verification.StatusApproved
	rec.CreditAwarded = &creditAmount

	entry, err := ledgerstore.ApplyTx(ctx, dbTx, rec.SubmitterID, creditAmount,
		ledger.ReasonEarnVerifiedRecommendation, rec.ID)
	if err != nil {
		return nil, err
	}

	// The submitter keeps the full award even when the pool can only absorb
	// part of it.
	applied, funded, err := promotionstore.ContributeTx(ctx, dbTx, rec.PromotionID, creditAmount)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &verification.ApprovalResult{
		Recommendation:  rec,
		Entry:           entry,
		PoolApplied:     applied,
		PromotionFunded: funded,
	}, nil
}

func (s *Store) Reject(ctx context.Context, id uuid.UUID) (*verification.Recommendation, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	lockQuery := `SELECT ` + selectRecommendationColumns + ` FROM recommendations WHERE id = $1 FOR UPDATE`

	rec, err := scanRecommendation(dbTx.QueryRowContext(ctx, lockQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, verification.ErrNotFound
		}

		return nil, fmt.Errorf("locking recommendation: %w", err)
	}

	if rec.Status != verification.StatusPending {
		return nil, verification.ErrAlreadyResolved
	}

	rejectQuery := `
		UPDATE recommendations
		SET status = $2, resolved_at = NOW()
		WHERE id = $1
		RETURNING resolved_at
	`

	err = dbTx.QueryRowContext(ctx, rejectQuery, id, verification.StatusRejected).Scan(&rec.ResolvedAt)
	if err != nil {
		return nil, fmt.Errorf("rejecting recommendation: %w", err)
	}

	rec.Status = verification.StatusRejected

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return rec, nil
}
