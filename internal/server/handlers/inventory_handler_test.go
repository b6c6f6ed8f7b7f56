package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridgeagent/internal/config"
	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/repository/memory"
	"fridgeagent/internal/server/handlers"
	"fridgeagent/internal/server/router"
	alertsvc "fridgeagent/internal/service/alerts"
	assistantsvc "fridgeagent/internal/service/assistant"
	inventorysvc "fridgeagent/internal/service/inventory"
)

func newTestRouter() *gin.Engine {
	repo := memory.NewRepository()
	inventory := inventorysvc.NewService(repo, nil)
	alerts := alertsvc.NewService(repo, nil, config.AlertsConfig{ExpiringWindowDays: 3, LowStockThreshold: 1}, nil)
	assistant := assistantsvc.NewService(inventory, nil, nil)

	return router.New(
		handlers.NewInventoryHandler(inventory, nil),
		handlers.NewAlertsHandler(alerts, nil),
		handlers.NewAssistantHandler(assistant, nil),
		nil,
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addItem(t *testing.T, r *gin.Engine, name string, qty float64, unit string, expiry time.Time) models.Item {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{
		"name":        name,
		"quantity":    qty,
		"unit":        unit,
		"expiry_date": expiry.Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	return item
}

func TestAddAndList(t *testing.T) {
	r := newTestRouter()
	expiry := time.Now().AddDate(0, 0, 10)

	added := addItem(t, r, "Milk", 1, "gallons", expiry)
	assert.NotEmpty(t, added.ID)

	w := doJSON(t, r, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []models.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Milk", items[0].Name)
}

func TestAdd_InvalidBody(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{"name": "Milk"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdd_BadExpiryDate(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/inventory", gin.H{
		"name":        "Milk",
		"quantity":    1,
		"expiry_date": "next tuesday",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_UnknownID(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPut, "/api/inventory/missing", gin.H{"quantity": 2})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_UnknownID(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodDelete, "/api/inventory/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelete_ExistingItem(t *testing.T) {
	r := newTestRouter()
	added := addItem(t, r, "Milk", 1, "gallons", time.Now().AddDate(0, 0, 10))

	w := doJSON(t, r, http.MethodDelete, "/api/inventory/"+added.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/inventory/"+added.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConsume_NoMatchIsSoft(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/inventory/consume", gin.H{"name": "caviar", "quantity": 1})

	require.Equal(t, http.StatusOK, w.Code)
	var outcome models.ConsumeOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.False(t, outcome.Matched)
}

// Cooking with 8 cups of milk against a 1-gallon record leaves 0.5 gallons,
// which then shows up as both an expiring and a low-stock alert.
func TestDeductThenAlerts_MilkScenario(t *testing.T) {
	r := newTestRouter()
	added := addItem(t, r, "Milk", 1, "gallons", time.Now().AddDate(0, 0, 2))

	w := doJSON(t, r, http.MethodPost, "/api/inventory/deduct", gin.H{
		"ingredients": []gin.H{{"name": "Milk", "amount_used": 8, "unit": "cups"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var deductResp struct {
		Results []models.DeductionResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deductResp))
	require.Len(t, deductResp.Results, 1)
	assert.Equal(t, 0.5, deductResp.Results[0].Remaining)
	assert.Equal(t, "gallons", deductResp.Results[0].Unit)

	w = doJSON(t, r, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found []models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))

	ids := make([]string, 0, len(found))
	for _, alert := range found {
		ids = append(ids, alert.ID)
	}
	assert.Contains(t, ids, fmt.Sprintf("expiring-%s", added.ID))
	assert.Contains(t, ids, fmt.Sprintf("low-%s", added.ID))
}

func TestChat_UnavailableWithoutAIProvider(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/chat", gin.H{"session_id": "s1", "message": "hello"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
