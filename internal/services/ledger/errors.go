package ledger

import "errors"

var (
	// ErrMalformed means the transfer request failed structural validation.
	// It is always raised before any database transaction is opened.
	ErrMalformed = errors.New("malformed transfer request")

	// ErrInsufficientFunds means the source account's available balance
	// (balance minus blocked amount) could not cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadyProcessed means Execute was called on a transfer that has
	// already left PLANNED. The call is a no-op.
	ErrAlreadyProcessed = errors.New("transfer already processed")

	// ErrSystemFailure wraps any unexpected error inside an atomic unit.
	// The unit is always rolled back before this surfaces.
	ErrSystemFailure = errors.New("system failure")
)
