package health_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/coreledger/onboardweb/internal/app/features/health"
	"github.com/coreledger/onboardweb/internal/testutil"
)

func TestServe_APIReachable(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := health.NewHandler(api.Client(), zap.NewNop())

	req := testutil.NewRequest("GET", "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Status string `json:"status"`
		API    string `json:"api"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "ok" || body.API != "reachable" {
		t.Errorf("got status=%q api=%q, want ok/reachable", body.Status, body.API)
	}
}

func TestServe_APIDown(t *testing.T) {
	api := testutil.NewStubAPI(t)
	h := health.NewHandler(api.Client(), zap.NewNop())
	api.Server.Close()

	req := testutil.NewRequest("GET", "/health")
	rec := testutil.NewRecorder()
	h.Serve(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, `"api":"unreachable"`)
}
