package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	poolservice "commonweal/contexts/resource-sharing/pool-service"
)

func newTestServer() *Server {
	return New(poolservice.NewInMemoryModule(nil, nil), nil, ":0")
}

func doJSON(t *testing.T, server *Server, method string, path string, userID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func createTestPool(t *testing.T, server *Server, payload map[string]any) string {
	t.Helper()
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload["community_id"]; !ok {
		payload["community_id"] = "community-1"
	}
	if _, ok := payload["name"]; !ok {
		payload["name"] = "winter supplies"
	}
	rr := doJSON(t, server, http.MethodPost, "/v1/councils/council-1/pools", "steward-1", payload)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create pool failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Pool struct {
			PoolID string `json:"pool_id"`
		} `json:"pool"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.Pool.PoolID
}

func TestPoolRoutesRequireUserHeader(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/v1/councils/council-1/pools", "", map[string]any{
		"community_id": "community-1",
		"name":         "winter supplies",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestContributionLifecycleCreditsInventory(t *testing.T) {
	server := newTestServer()
	poolID := createTestPool(t, server, map[string]any{"minimum_contribution": 3})

	rr := doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/contributions", "member-1", map[string]any{
		"item_id":       "blankets",
		"units_offered": 2,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 below minimum, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/contributions", "member-1", map[string]any{
		"item_id":       "blankets",
		"units_offered": 5,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("contribute failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var contributeResp struct {
		Contribution struct {
			ContributionID string `json:"contribution_id"`
			Status         string `json:"status"`
		} `json:"contribution"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &contributeResp); err != nil {
		t.Fatalf("decode contribute response: %v", err)
	}
	if contributeResp.Contribution.Status != "pending" {
		t.Fatalf("expected pending status, got %s", contributeResp.Contribution.Status)
	}

	confirmPath := "/v1/pools/" + poolID + "/contributions/" + contributeResp.Contribution.ContributionID + "/confirm"
	rr = doJSON(t, server, http.MethodPost, confirmPath, "steward-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("confirm failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, confirmPath, "steward-1", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on replayed confirm, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/pools/"+poolID+"/inventory", "member-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("inventory read failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var inventoryResp struct {
		Items []struct {
			ItemID         string `json:"item_id"`
			UnitsAvailable int64  `json:"units_available"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &inventoryResp); err != nil {
		t.Fatalf("decode inventory response: %v", err)
	}
	if len(inventoryResp.Items) != 1 || inventoryResp.Items[0].UnitsAvailable != 5 {
		t.Fatalf("expected 5 blankets available, got %+v", inventoryResp.Items)
	}
}

func TestMassDistributionPreviewThenCommit(t *testing.T) {
	server := newTestServer()
	poolID := createTestPool(t, server, nil)
	server.pools.Store.SetInventory(poolID, "blankets", 10)

	rr := doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/distributions/preview", "steward-1", map[string]any{
		"item_id":       "blankets",
		"recipient_ids": []string{"user-1", "user-2", "user-3"},
		"per_user_cap":  4,
		"strategy":      "equal",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("preview failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var previewResp struct {
		Plan struct {
			Available      int64 `json:"available"`
			TotalAllocated int64 `json:"total_allocated"`
			Entries        []struct {
				RecipientID    string `json:"recipient_id"`
				UnitsAllocated int64  `json:"units_allocated"`
			} `json:"entries"`
		} `json:"plan"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &previewResp); err != nil {
		t.Fatalf("decode preview response: %v", err)
	}
	if previewResp.Plan.TotalAllocated != 10 {
		t.Fatalf("expected full allocation in preview, got %d", previewResp.Plan.TotalAllocated)
	}
	if previewResp.Plan.Entries[0].UnitsAllocated != 4 {
		t.Fatalf("expected first recipient to take the remainder, got %d", previewResp.Plan.Entries[0].UnitsAllocated)
	}

	commit := map[string]any{
		"item_id":            "blankets",
		"recipient_ids":      []string{"user-1", "user-2", "user-3"},
		"per_user_cap":       4,
		"strategy":           "equal",
		"expected_available": previewResp.Plan.Available,
	}
	rr = doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/distributions/mass", "steward-1", commit)
	if rr.Code != http.StatusCreated {
		t.Fatalf("mass commit failed: %d body=%s", rr.Code, rr.Body.String())
	}

	// The ledger is drained now, so replaying the same commit must conflict.
	rr = doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/distributions/mass", "steward-1", commit)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 on stale balance, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/v1/pools/"+poolID+"/distributions", "steward-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("history read failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var historyResp struct {
		Items []struct {
			UnitsDistributed int64 `json:"units_distributed"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &historyResp); err != nil {
		t.Fatalf("decode history response: %v", err)
	}
	var total int64
	for _, item := range historyResp.Items {
		total += item.UnitsDistributed
	}
	if total != 10 {
		t.Fatalf("expected 10 units recorded, got %d", total)
	}
}

func TestClosedPoolRejectsContributionsAndDistributions(t *testing.T) {
	server := newTestServer()
	poolID := createTestPool(t, server, nil)
	server.pools.Store.SetInventory(poolID, "blankets", 4)

	rr := doJSON(t, server, http.MethodDelete, "/v1/pools/"+poolID, "steward-1", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("close failed: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/contributions", "member-1", map[string]any{
		"item_id":       "blankets",
		"units_offered": 2,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 contributing to closed pool, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/distributions", "steward-1", map[string]any{
		"item_id":      "blankets",
		"recipient_id": "user-1",
		"units":        2,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 distributing from closed pool, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDirectDistributionInsufficientInventory(t *testing.T) {
	server := newTestServer()
	poolID := createTestPool(t, server, nil)
	server.pools.Store.SetInventory(poolID, "blankets", 1)

	rr := doJSON(t, server, http.MethodPost, "/v1/pools/"+poolID+"/distributions", "steward-1", map[string]any{
		"item_id":      "blankets",
		"recipient_id": "user-1",
		"units":        3,
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetUnknownPoolReturnsNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/v1/pools/missing", "member-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
