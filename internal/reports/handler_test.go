package reports_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/bootstrap"
	"bonsai-backend/internal/shared/auth"
	"bonsai-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		DocStoreType:    "file",
		DataDir:         t.TempDir(),
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: userID})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, resp.Body.String())
	}
}

func TestReportLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := bearer(t, "user-1")

	// A bonsai with one important April record.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/bonsai", token, map[string]any{
		"name":    "三河黒松",
		"species": "黒松",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create bonsai: %d %s", resp.Code, resp.Body.String())
	}
	var plant struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &plant)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/bonsai/"+plant.ID+"/records", token, map[string]any{
		"workTypes": []string{"pruning"},
		"date":      "2025-04-10",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create record: %d %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", token, map[string]any{
		"year":  2025,
		"month": 4,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", resp.Code, resp.Body.String())
	}
	var generated struct {
		ID             string `json:"id"`
		ReportTitle    string `json:"reportTitle"`
		TotalWorkCount int    `json:"totalWorkCount"`
	}
	decodeBody(t, resp, &generated)
	if generated.ReportTitle != "2025年4月 盆栽管理レポート" {
		t.Fatalf("unexpected title %q", generated.ReportTitle)
	}
	if generated.TotalWorkCount != 1 {
		t.Fatalf("expected one counted record, got %d", generated.TotalWorkCount)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/2025/4", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get report: %d %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list reports: %d %s", resp.Code, resp.Body.String())
	}
	var listed struct {
		Items []struct {
			ID    string `json:"id"`
			IsNew bool   `json:"isNew"`
		} `json:"items"`
		NextCursor string `json:"nextCursor"`
	}
	decodeBody(t, resp, &listed)
	if len(listed.Items) != 1 || !listed.Items[0].IsNew {
		t.Fatalf("expected a single new report, got %+v", listed)
	}
	if listed.NextCursor != "" {
		t.Fatalf("single page must not carry a cursor")
	}

	resp = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/reports/%s/refresh", generated.ID), token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh: %d %s", resp.Code, resp.Body.String())
	}
	var refreshed struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &refreshed)
	if refreshed.ID != generated.ID {
		t.Fatalf("refresh must keep the id")
	}
}

func TestGenerateRejectsBadMonth(t *testing.T) {
	router := newTestRouter(t)
	token := bearer(t, "user-1")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", token, map[string]any{
		"year":  2025,
		"month": 13,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	if body.Error.Code != "validation_error" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestGetMissingReport(t *testing.T) {
	router := newTestRouter(t)
	token := bearer(t, "user-1")

	resp := doJSON(t, router, http.MethodGet, "/api/v1/reports/2025/4", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestReportsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/reports", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestReportsAreScopedToUser(t *testing.T) {
	router := newTestRouter(t)
	owner := bearer(t, "owner")
	other := bearer(t, "other")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/reports/generate", owner, map[string]any{
		"year":  2025,
		"month": 4,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/reports/2025/4", other, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("foreign report should 404, got %d", resp.Code)
	}
}
