package ledger

import "errors"

var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrDuplicateTransaction = errors.New("duplicate ledger transaction")
	ErrInvalidAmount        = errors.New("amount must be positive")
)
