/*
errors.go - Centralized error types for the payment engine

PURPOSE:
  All engine error kinds in one place. Callers match with errors.Is;
  structured wrappers carry the client/tx context for diagnostics.

ERROR CATEGORIES:
  1. Amount errors     - Parse and checked-arithmetic failures
  2. Transition errors - Events rejected by the account state machine
  3. Report errors     - Accounts excluded from the final summary

PROPAGATION:
  Submit returns a *RejectionError wrapping one of the sentinels below.
  A rejected event has zero effect on account state.

SEE ALSO:
  - account.go: Produces the transition errors
  - amount.go: Produces the amount errors
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned for a deposit or withdrawal whose
	// amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// available balance. Held funds are never spendable.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateTransaction is returned when a deposit or withdrawal
	// reuses a transaction id already posted for this client.
	ErrDuplicateTransaction = errors.New("transaction id already exists")

	// ErrUnknownTransaction is returned when a dispute, resolve, or
	// chargeback references a transaction id this client never posted.
	ErrUnknownTransaction = errors.New("transaction does not exist")

	// ErrAlreadyDisputed is returned for a dispute against a posting
	// that is already under dispute.
	ErrAlreadyDisputed = errors.New("transaction already disputed")

	// ErrNotUnderDispute is returned for a resolve or chargeback against
	// a posting that is not under dispute.
	ErrNotUnderDispute = errors.New("transaction not under dispute")

	// ErrNotDisputable is returned for a dispute against a posting that
	// was charged back. ChargedBack is terminal.
	ErrNotDisputable = errors.New("transaction charged back and no longer disputable")

	// ErrAccountFrozen is returned for a deposit or withdrawal on a
	// frozen account. The dispute lifecycle stays admissible.
	ErrAccountFrozen = errors.New("account is frozen")

	// ErrOverflow is returned when checked arithmetic leaves the
	// representable amount range.
	ErrOverflow = errors.New("amount out of bounds")
)

// Amount parse errors. The record-stream layer surfaces these as
// per-row decode failures; they never reach Submit.
var (
	ErrAmountSyntax    = errors.New("invalid numeric value")
	ErrAmountPrecision = errors.New("more than four fractional digits")
	ErrAmountRange     = errors.New("numeric value out of range")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RejectionError wraps a transition error with the event that caused it.
type RejectionError struct {
	Client ClientID
	Tx     TxID
	Kind   Kind
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s client=%d tx=%d: %v", e.Kind, e.Client, e.Tx, e.Err)
}

func (e *RejectionError) Unwrap() error { return e.Err }

// TotalOverflowError marks an account whose available+held sum cannot
// be represented. The snapshot emitter excludes the account and reports
// this instead of producing a malformed row.
type TotalOverflowError struct {
	Client ClientID
}

func (e *TotalOverflowError) Error() string {
	return fmt.Sprintf("account %d: total overflows representable range", e.Client)
}

func (e *TotalOverflowError) Unwrap() error { return ErrOverflow }
