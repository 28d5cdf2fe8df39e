package bank

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("transfer source and destination are the same account")
	ErrUnknownAccount    = errors.New("account does not exist")
	ErrBalanceOverflow   = errors.New("balance would exceed the maximum")
	ErrNoAccounts        = errors.New("bank needs at least one account")
)
