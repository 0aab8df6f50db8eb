/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  JSON structures for the account surface. These decouple the engine's
  internal types from the external contract; amounts are serialized as
  exact decimal strings, never floats.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/report.go: The internal form
*/
package api

import "github.com/warp/payment-engine/ledger"

// AccountDTO represents one account report in API responses.
type AccountDTO struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toAccountDTO(r ledger.Report) AccountDTO {
	return AccountDTO{
		Client:    uint16(r.Client),
		Available: r.Available.String(),
		Held:      r.Held.String(),
		Total:     r.Total.String(),
		Locked:    r.Locked,
	}
}
