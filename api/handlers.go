/*
handlers.go - HTTP API handlers for the account surface

PURPOSE:
  Exposes a processed engine via REST. The engine is read-only by the
  time the server starts: processing finishes before ListenAndServe,
  and no handler mutates account state.

ENDPOINTS:
  GET /api/accounts           List all account reports
  GET /api/accounts/{client}  Get one account report
  GET /api/healthz            Liveness probe

ERROR HANDLING:
  - 400: client id not a decimal in 0..65535
  - 404: unknown client
  - 500: account total overflow

SEE ALSO:
  - dto.go: Response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/payment-engine/ledger"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *ledger.Engine
}

// NewHandler creates a new handler over a processed engine.
func NewHandler(engine *ledger.Engine) *Handler {
	return &Handler{Engine: engine}
}

// ListAccounts returns every account report in ascending client order.
// GET /api/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	reports, _ := h.Engine.Snapshots()
	dtos := make([]AccountDTO, 0, len(reports))
	for _, rep := range reports {
		dtos = append(dtos, toAccountDTO(rep))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAccount returns a single account report.
// GET /api/accounts/{client}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")
	id, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err)
		return
	}

	acct, ok := h.Engine.Account(ledger.ClientID(id))
	if !ok {
		writeError(w, http.StatusNotFound, "account not found", nil)
		return
	}

	report, err := ledger.Snapshot(ledger.ClientID(id), acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account total overflow", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(report))
}

// Health reports liveness.
// GET /api/healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"accounts": h.Engine.Len(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
