package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/ledger"
	ledgerstore "github.com/vintagechord/chorus/internal/ledger/store"
	"github.com/vintagechord/chorus/internal/promotion"
	"github.com/vintagechord/chorus/internal/request"
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

const selectRequestColumns = `
	id, user_id, cost_credits, funded_credits, channels, status, created_at, updated_at
`

func scanRequest(s scanner) (*request.KaraokeRequest, error) {
	var req request.KaraokeRequest

	var statusStr string

	var channels int

	if err := s.Scan(
		&req.ID, &req.UserID, &req.CostCredits, &req.FundedCredits, &channels,
		&statusStr, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	req.Status = request.Status(statusStr)
	req.Channels = promotion.Channel(channels)

	return &req, nil
}

func (s *Store) Create(ctx context.Context, req *request.KaraokeRequest) error {
	query := `
		INSERT INTO karaoke_requests (user_id, cost_credits, channels, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		req.UserID,
		req.CostCredits,
		int(req.Channels),
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating karaoke request: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*request.KaraokeRequest, error) {
	query := `SELECT ` + selectRequestColumns + ` FROM karaoke_requests WHERE id = $1`

	req, err := scanRequest(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, request.ErrNotFound
		}

		return nil, fmt.Errorf("getting karaoke request: %w", err)
	}

	return req, nil
}

func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]*request.KaraokeRequest, error) {
	query := `SELECT ` + selectRequestColumns + `
		FROM karaoke_requests
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing karaoke requests: %w", err)
	}
	defer rows.Close()

	var reqs []*request.KaraokeRequest

	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning karaoke request: %w", err)
		}

		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating karaoke requests: %w", err)
	}

	return reqs, nil
}

// Fund debits the owner's ledger account and applies the amount to the
// request in a single database transaction. The ledger entry carries the
// caller's referenceID, so distinct partial fundings coexist under the
// ledger's (reason, reference_id) uniqueness guard while a retried call
// with the same id is rejected as a duplicate instead of debiting twice.
func (s *Store) Fund(ctx context.Context, id, userID uuid.UUID, amount int64, referenceID uuid.UUID) (*request.KaraokeRequest, *ledger.Entry, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	req, err := lockRequest(ctx, dbTx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	if _, err := req.ApplyFunding(amount); err != nil {
		return nil, nil, err
	}

	entry, err := ledgerstore.ApplyTx(ctx, dbTx, userID, -amount,
		ledger.ReasonSpendRequestFunding, referenceID)
	if err != nil {
		return nil, nil, err
	}

	updateQuery := `
		UPDATE karaoke_requests
		SET funded_credits = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := dbTx.ExecContext(ctx, updateQuery, id, req.FundedCredits, req.Status); err != nil {
		return nil, nil, fmt.Errorf("updating karaoke request: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing transaction: %w", err)
	}

	return req, entry, nil
}

func (s *Store) Cancel(ctx context.Context, id, userID uuid.UUID) (*request.KaraokeRequest, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	req, err := lockRequest(ctx, dbTx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Status != request.StatusOpen {
		return nil, request.ErrNotOpen
	}

	query := `
		UPDATE karaoke_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := dbTx.ExecContext(ctx, query, id, request.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancelling karaoke request: %w", err)
	}

	req.Status = request.StatusCancelled

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return req, nil
}

// lockRequest row-locks the request scoped to its owner. A miss on either id
// or owner reports ErrNotFound, so foreign requests are indistinguishable
// from absent ones.
func lockRequest(ctx context.Context, dbTx *sql.Tx, id, userID uuid.UUID) (*request.KaraokeRequest, error) {
	query := `SELECT ` + selectRequestColumns + `
		FROM karaoke_requests
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`

	req, err := scanRequest(dbTx.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, request.ErrNotFound
		}

		return nil, fmt.Errorf("locking karaoke request: %w", err)
	}

	return req, nil
}
