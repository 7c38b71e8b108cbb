package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tailtown/pricingservice/internal/domain"
	"github.com/tailtown/pricingservice/internal/health"
	"github.com/tailtown/pricingservice/internal/repository/memory"
	"github.com/tailtown/pricingservice/internal/service"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	quotes := service.NewQuoteService(store, nil, nil)
	admin := service.NewAdminService(store, nil, nil)
	srv := httptest.NewServer(NewRouter(quotes, admin, health.NewChecker(nil, nil)))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func putJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data interface{}) *ErrorBody {
	t.Helper()
	defer resp.Body.Close()
	raw := struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorBody      `json:"error"`
	}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	if data != nil && raw.Data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Error
}

func TestDepositCalculateEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	err := store.DepositConfigs().Put(t.Context(), domain.DepositConfig{
		TenantID:          "t1",
		DefaultAmountType: domain.AmountTypePercentage,
		DefaultPercentage: 20,
		RefundPolicy:      domain.RefundPolicyFull,
	})
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/v1/tenants/t1/deposits/calculate", map[string]interface{}{
		"total_cost": 250,
		"start_date": "2026-06-15",
		"end_date":   "2026-06-18",
		"today":      "2026-06-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote domain.DepositQuote
	errBody := decodeEnvelope(t, resp, &quote)
	require.Nil(t, errBody)
	require.Equal(t, 50.0, quote.DepositAmount)
	require.Equal(t, domain.RefundPolicyFull, quote.RefundPolicy)
	require.False(t, quote.Advisory)
}

func TestDepositCalculateRejectsMalformedDate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tenants/t1/deposits/calculate", map[string]interface{}{
		"total_cost": 100,
		"start_date": "June 15th",
		"end_date":   "2026-06-18",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errBody := decodeEnvelope(t, resp, nil)
	require.NotNil(t, errBody)
	require.Equal(t, domain.ErrCodeInvalidInput, errBody.Code)
}

func TestRefundEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	err := store.DepositConfigs().Put(t.Context(), domain.DepositConfig{
		TenantID:          "t1",
		DefaultAmountType: domain.AmountTypeFull,
		RefundPolicy:      domain.RefundPolicyTiered,
		RefundTiers: []domain.RefundTier{
			{DaysBeforeStart: 7, RefundPercentage: 100},
			{DaysBeforeStart: 3, RefundPercentage: 50},
		},
	})
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/v1/tenants/t1/deposits/refund", map[string]interface{}{
		"deposit_amount": 100,
		"start_date":     "2026-06-15",
		"cancel_date":    "2026-06-11",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote domain.RefundQuote
	errBody := decodeEnvelope(t, resp, &quote)
	require.Nil(t, errBody)
	require.Equal(t, 50.0, quote.RefundAmount)
	require.Equal(t, 4, quote.DaysBeforeStart)
}

func TestMultiPetEndpointUnknownSuite(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/tenants/t1/multi-pet/calculate-pricing", map[string]interface{}{
		"suite_type":     "penthouse",
		"number_of_pets": 2,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	errBody := decodeEnvelope(t, resp, nil)
	require.NotNil(t, errBody)
	require.Equal(t, domain.ErrCodeNotFound, errBody.Code)
}

func TestAdminRuleLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/v1/tenants/t1/admin/rules/deposit"

	resp := putJSON(t, base, map[string]interface{}{
		"name":        "Holiday season",
		"priority":    1,
		"active":      true,
		"amount_type": "PERCENTAGE",
		"percentage":  30,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored domain.Rule
	errBody := decodeEnvelope(t, resp, &stored)
	require.Nil(t, errBody)
	require.Equal(t, "t1", stored.TenantID)
	require.Equal(t, domain.RuleKindDeposit, stored.Kind)

	// second rule with the same priority is rejected
	resp = putJSON(t, base, map[string]interface{}{
		"name":        "Conflicting",
		"priority":    1,
		"active":      true,
		"amount_type": "FULL",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody = decodeEnvelope(t, resp, nil)
	require.NotNil(t, errBody)
	require.Equal(t, domain.ErrCodeInvalidConfig, errBody.Code)

	listResp, err := http.Get(base)
	require.NoError(t, err)
	var rules []domain.Rule
	errBody = decodeEnvelope(t, listResp, &rules)
	require.Nil(t, errBody)
	require.Len(t, rules, 1)

	req, err := http.NewRequest(http.MethodDelete, base+"/"+stored.ID.String(), nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()
}

func TestAdminRejectsUnknownRuleKind(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/tenants/t1/admin/rules/loyalty")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decodeEnvelope(t, resp, nil)
	require.NotNil(t, errBody)
	require.Equal(t, domain.ErrCodeInvalidInput, errBody.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
