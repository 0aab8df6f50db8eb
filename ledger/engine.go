/*
engine.go - Event routing across client accounts

PURPOSE:
  Engine maps client ids to Accounts and feeds each submitted event to
  the right one. It performs no validation of its own; every semantic
  check lives in the Account.

ACCOUNT CREATION:
  An account is created the first time any event is routed to its
  client, even if that event is then rejected. A failed withdrawal on
  an unseen client therefore still produces an empty row in the final
  summary. Events that fail decoding never reach Submit and create
  nothing.

CONCURRENCY:
  The engine is single-threaded by design: events are applied one at a
  time in submission order. Hosts wanting parallelism shard by client
  id across independent engines.
*/
package ledger

import "sort"

// Engine routes events to per-client accounts and accumulates state
// for the final summary.
type Engine struct {
	accounts map[ClientID]*Account
}

// NewEngine returns an engine with no accounts.
func NewEngine() *Engine {
	return &Engine{accounts: make(map[ClientID]*Account)}
}

// Submit routes the event to its client's account, creating the
// account if absent, and applies the transition. A non-nil error is a
// *RejectionError wrapping the semantic cause; the account state is
// unchanged on error.
func (e *Engine) Submit(ev Event) error {
	acct, ok := e.accounts[ev.Client]
	if !ok {
		acct = NewAccount()
		e.accounts[ev.Client] = acct
	}
	if err := acct.Apply(ev); err != nil {
		return &RejectionError{Client: ev.Client, Tx: ev.Tx, Kind: ev.Kind, Err: err}
	}
	return nil
}

// Account returns the account for client, if one has been created.
func (e *Engine) Account(client ClientID) (*Account, bool) {
	acct, ok := e.accounts[client]
	return acct, ok
}

// Clients returns all known client ids in ascending order.
func (e *Engine) Clients() []ClientID {
	ids := make([]ClientID, 0, len(e.accounts))
	for id := range e.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of accounts.
func (e *Engine) Len() int { return len(e.accounts) }
