package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payment-engine/api"
	"github.com/warp/payment-engine/ledger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// newTestServer processes a small batch and serves it.
func newTestServer(t *testing.T) *httptest.Server {
	engine := ledger.NewEngine()
	events := []ledger.Event{
		{Kind: ledger.KindDeposit, Client: 1, Tx: 1, Amount: ledger.MustParseAmount("1.5")},
		{Kind: ledger.KindDeposit, Client: 2, Tx: 1, Amount: ledger.MustParseAmount("10")},
		{Kind: ledger.KindDispute, Client: 2, Tx: 1},
		{Kind: ledger.KindChargeback, Client: 2, Tx: 1},
	}
	for _, ev := range events {
		require.NoError(t, engine.Submit(ev))
	}

	server := httptest.NewServer(api.NewRouter(api.NewHandler(engine)))
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, into any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
	return resp.StatusCode
}

// =============================================================================
// ENDPOINTS
// =============================================================================

func TestListAccounts(t *testing.T) {
	server := newTestServer(t)

	var accounts []api.AccountDTO
	status := getJSON(t, server.URL+"/api/accounts", &accounts)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, accounts, 2)

	assert.Equal(t, uint16(1), accounts[0].Client)
	assert.Equal(t, "1.5", accounts[0].Available)
	assert.Equal(t, "0", accounts[0].Held)
	assert.Equal(t, "1.5", accounts[0].Total)
	assert.False(t, accounts[0].Locked)

	assert.Equal(t, uint16(2), accounts[1].Client)
	assert.Equal(t, "0", accounts[1].Available)
	assert.Equal(t, "0", accounts[1].Held)
	assert.True(t, accounts[1].Locked)
}

func TestGetAccount(t *testing.T) {
	server := newTestServer(t)

	var account api.AccountDTO
	status := getJSON(t, server.URL+"/api/accounts/1", &account)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint16(1), account.Client)
	assert.Equal(t, "1.5", account.Available)
}

func TestGetAccount_NotFound(t *testing.T) {
	server := newTestServer(t)

	var resp api.ErrorResponse
	status := getJSON(t, server.URL+"/api/accounts/999", &resp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "account not found", resp.Error)
}

func TestGetAccount_InvalidId(t *testing.T) {
	server := newTestServer(t)

	var resp api.ErrorResponse
	for _, bad := range []string{"abc", "-1", "70000"} {
		status := getJSON(t, server.URL+"/api/accounts/"+bad, &resp)
		assert.Equal(t, http.StatusBadRequest, status, "id %q", bad)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	var health map[string]any
	status := getJSON(t, server.URL+"/api/healthz", &health)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(2), health["accounts"])
}
