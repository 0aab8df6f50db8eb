/*
report.go - Final account snapshots

PURPOSE:
  Once input is exhausted, the engine's accounts are walked and frozen
  into Report rows for the external summary. Total is computed here,
  never stored; an account whose available+held sum overflows is
  excluded and reported as an error instead of emitting a malformed
  row.

ORDERING:
  Reports are emitted in ascending client id. The external contract
  leaves row order unspecified; a deterministic walk keeps output
  diffable and tests simple.
*/
package ledger

// Report is the final snapshot of one account.
type Report struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Total     Amount
	Locked    bool
}

// Snapshot freezes a single account into a report row.
func Snapshot(client ClientID, acct *Account) (Report, error) {
	total, err := acct.Total()
	if err != nil {
		return Report{}, &TotalOverflowError{Client: client}
	}
	return Report{
		Client:    client,
		Available: acct.Available(),
		Held:      acct.Held(),
		Total:     total,
		Locked:    acct.Frozen(),
	}, nil
}

// Snapshots walks every account in ascending client order. Accounts
// whose totals overflow are collected into the returned error slice
// rather than the report slice.
func (e *Engine) Snapshots() ([]Report, []error) {
	reports := make([]Report, 0, len(e.accounts))
	var errs []error
	for _, client := range e.Clients() {
		r, err := Snapshot(client, e.accounts[client])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, r)
	}
	return reports, errs
}
