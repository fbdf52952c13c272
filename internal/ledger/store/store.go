package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vintagechord/chorus/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Apply moves the account balance by delta and appends the matching entry in
// a single database transaction.
func (s *Store) Apply(ctx context.Context, accountID uuid.UUID, delta int64, reason ledger.Reason, referenceID uuid.UUID) (*ledger.Entry, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	entry, err := ApplyTx(ctx, dbTx, accountID, delta, reason, referenceID)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return entry, nil
}

// ApplyTx performs a ledger movement inside an existing database
// transaction. Composite operations (recommendation approval, request
// funding) use it so the ledger mutation commits or rolls back with their
// own state transition.
func ApplyTx(ctx context.Context, dbTx *sql.Tx, accountID uuid.UUID, delta int64, reason ledger.Reason, referenceID uuid.UUID) (*ledger.Entry, error) {
	// The balance upsert runs first: DO UPDATE takes the account row lock,
	// so seq values below are assigned in lock order and per-account seq
	// order matches commit order.
	balanceQuery := `
		INSERT INTO ledger_accounts (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = ledger_accounts.balance + EXCLUDED.balance, updated_at = NOW()
	`
	if _, err := dbTx.ExecContext(ctx, balanceQuery, accountID, delta); err != nil {
		return nil, fmt.Errorf("updating balance: %w", translateError(err))
	}

	entryQuery := `
		INSERT INTO ledger_transactions (account_id, delta, reason, reference_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, seq, created_at
	`

	entry := ledger.Entry{
		AccountID:   accountID,
		Delta:       delta,
		Reason:      reason,
		ReferenceID: referenceID,
	}

	err := dbTx.QueryRowContext(ctx, entryQuery, accountID, delta, reason, referenceID).
		Scan(&entry.ID, &entry.Seq, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appending ledger entry: %w", translateError(err))
	}

	return &entry, nil
}

// translateError maps constraint violations onto domain errors. The
// uniqueness constraint on (reason, reference_id) is what makes retried
// approvals and funding calls safe to repeat.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.ConstraintName {
	case "ledger_transactions_reason_reference_key":
		return ledger.ErrDuplicateTransaction
	case "ledger_accounts_balance_check":
		return ledger.ErrInsufficientBalance
	}

	return err
}

func (s *Store) Balance(ctx context.Context, accountID uuid.UUID) (int64, error) {
	query := `SELECT balance FROM ledger_accounts WHERE user_id = $1`

	var balance int64

	err := s.db.QueryRowContext(ctx, query, accountID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, fmt.Errorf("getting balance: %w", err)
	}

	return balance, nil
}

func (s *Store) Entries(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*ledger.Entry, error) {
	query := `
		SELECT id, seq, account_id, delta, reason, reference_id, created_at
		FROM ledger_transactions
		WHERE account_id = $1
		ORDER BY seq DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var e ledger.Entry

		var reasonStr string

		if err := rows.Scan(&e.ID, &e.Seq, &e.AccountID, &e.Delta, &reasonStr, &e.ReferenceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		e.Reason = ledger.Reason(reasonStr)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}
