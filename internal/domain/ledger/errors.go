package ledger

import "errors"

var (
	ErrAccountNotFound     = errors.New("ledger account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrQuotaExceeded       = errors.New("makeup quota exceeded")
)
