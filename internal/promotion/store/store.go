package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vintagechord/chorus/internal/promotion"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPromotionColumns = `
	id, submission_ref, title, artist, credits_required, credits_balance,
	status, channels, created_at, updated_at
`

func scanPromotion(s scanner) (*promotion.Promotion, error) {
	var p promotion.Promotion

	var statusStr string

	var channels int

	if err := s.Scan(
		&p.ID, &p.SubmissionRef, &p.Title, &p.Artist, &p.CreditsRequired, &p.CreditsBalance,
		&statusStr, &channels, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = promotion.Status(statusStr)
	p.Channels = promotion.Channel(channels)

	return &p, nil
}

func (s *Store) Create(ctx context.Context, p *promotion.Promotion) error {
	query := `
		INSERT INTO promotions (submission_ref, title, artist, credits_required, status, channels)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.SubmissionRef,
		p.Title,
		p.Artist,
		p.CreditsRequired,
		p.Status,
		int(p.Channels),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating promotion: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	query := `SELECT ` + selectPromotionColumns + ` FROM promotions WHERE id = $1`

	p, err := scanPromotion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, promotion.ErrNotFound
		}

		return nil, fmt.Errorf("getting promotion: %w", err)
	}

	return p, nil
}

func (s *Store) ListActive(ctx context.Context, limit int) ([]*promotion.Promotion, error) {
	query := `SELECT ` + selectPromotionColumns + `
		FROM promotions
		WHERE status = $1
		ORDER BY credits_balance DESC, created_at ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, promotion.StatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("listing active promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*promotion.Promotion

	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning promotion: %w", err)
		}

		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating promotions: %w", err)
	}

	return promotions, nil
}

// Contribute applies amount to the pool in its own transaction.
func (s *Store) Contribute(ctx context.Context, id uuid.UUID, amount int64) (int64, bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	applied, funded, err := ContributeTx(ctx, dbTx, id, amount)
	if err != nil {
		return 0, false, err
	}

	if err := dbTx.Commit(); err != nil {
		return 0, false, fmt.Errorf("committing transaction: %w", err)
	}

	return applied, funded, nil
}

// ContributeTx applies amount to the promotion pool inside an existing
// database transaction. The row lock serializes concurrent contributions, so
// the clamp against the target and the FUNDED flip see a consistent balance.
func ContributeTx(ctx context.Context, dbTx *sql.Tx, id uuid.UUID, amount int64) (int64, bool, error) {
	lockQuery := `SELECT ` + selectPromotionColumns + ` FROM promotions WHERE id = $1 FOR UPDATE`

	p, err := scanPromotion(dbTx.QueryRowContext(ctx, lockQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, promotion.ErrNotFound
		}

		return 0, false, fmt.Errorf("locking promotion: %w", err)
	}

	applied, funded, err := p.ApplyContribution(amount)
	if err != nil {
		return 0, false, err
	}

	updateQuery := `
		UPDATE promotions
		SET credits_balance = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := dbTx.ExecContext(ctx, updateQuery, id, p.CreditsBalance, p.Status); err != nil {
		return 0, false, fmt.Errorf("updating promotion pool: %w", err)
	}

	return applied, funded, nil
}

func (s *Store) Close(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE promotions
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	res, err := s.db.ExecContext(ctx, query, id, promotion.StatusClosed, promotion.StatusActive)
	if err != nil {
		return fmt.Errorf("closing promotion: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing promotion: %w", err)
	}

	if affected == 0 {
		return promotion.ErrNotActive
	}

	return nil
}
