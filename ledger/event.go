/*
event.go - Input event model

PURPOSE:
  Event is the tagged variant describing a single input record after
  decoding. It is a closed union: the Kind constants below are the only
  admissible values, and the Account dispatches on Kind with a single
  switch. There is no polymorphic event interface.

IDENTIFIER SCOPE:
  ClientID is a flat 16-bit namespace. TxID is scoped per client: two
  clients may independently use the same transaction id, and only
  deposits/withdrawals claim ids.
*/
package ledger

import "fmt"

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal within one client's history.
type TxID uint32

// Kind is the event discriminator. Values match the external lowercase
// record type.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// Valid reports whether k is one of the five event kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return true
	}
	return false
}

// Event is a single decoded input record.
//
// Amount is meaningful only for KindDeposit and KindWithdrawal; the
// decoder leaves it at the zero value for the dispute lifecycle kinds.
type Event struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount Amount
}

func (e Event) String() string {
	switch e.Kind {
	case KindDeposit, KindWithdrawal:
		return fmt.Sprintf("%s client=%d tx=%d amount=%s", e.Kind, e.Client, e.Tx, e.Amount)
	default:
		return fmt.Sprintf("%s client=%d tx=%d", e.Kind, e.Client, e.Tx)
	}
}
