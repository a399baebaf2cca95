package bank

import (
	"errors"

	"github.com/agencia-dev/agencia/internal/model"
)

var (
	// ErrAccountNotFound means no account has the given number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount means an account with the number already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrSelfTransfer means source and destination are the same account.
	ErrSelfTransfer = errors.New("transfer to the same account is not allowed")

	// ErrPayeeNotFound means no account is registered under the payee key.
	ErrPayeeNotFound = errors.New("no account found for key")

	// ErrInsufficientFunds is the account-level withdrawal failure.
	ErrInsufficientFunds = model.ErrInsufficientFunds
)
