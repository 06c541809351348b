package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedgerApp(t *testing.T) (*fiber.App, *gorm.DB, uint, uint) {
	svc, db, pid, fid := setupLedgerTest(t)
	app := fiber.New()
	h := &Handlers{Service: svc}
	app.Get("/api/v1/transactions", h.ListTransactions)
	app.Delete("/api/v1/transactions", h.DeleteTransactions)
	return app, db, pid, fid
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestListTransactionsHandler(t *testing.T) {
	app, db, pid, fid := newLedgerApp(t)
	seedEntry(t, db, pid, fid, time.Now().UTC())

	status, body := doJSON(t, app, "GET", fmt.Sprintf("/api/v1/transactions?portfolio_id=%d&page=1&per_page=10", pid), nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	meta, ok := body["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, meta["total"])
}

func TestListTransactionsHandler_MissingPortfolioID(t *testing.T) {
	app, _, _, _ := newLedgerApp(t)

	status, _ := doJSON(t, app, "GET", "/api/v1/transactions", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestListTransactionsHandler_UnknownPortfolio(t *testing.T) {
	app, _, _, _ := newLedgerApp(t)

	status, _ := doJSON(t, app, "GET", "/api/v1/transactions?portfolio_id=9999", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDeleteTransactionsHandler(t *testing.T) {
	app, db, pid, fid := newLedgerApp(t)
	a := seedEntry(t, db, pid, fid, time.Now().UTC())

	status, body := doJSON(t, app, "DELETE", "/api/v1/transactions", map[string]interface{}{
		"transaction_ids": []uint{a, 9999},
	})
	assert.Equal(t, fiber.StatusOK, status)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, data["deleted"])
	assert.EqualValues(t, []interface{}{float64(9999)}, data["not_found"])
}

func TestDeleteTransactionsHandler_EmptyBatch(t *testing.T) {
	app, _, _, _ := newLedgerApp(t)

	status, _ := doJSON(t, app, "DELETE", "/api/v1/transactions", map[string]interface{}{
		"transaction_ids": []uint{},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
