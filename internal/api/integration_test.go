package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vhelp/assistflow/internal/testutil"
)

func TestServerEndpoints_Integration(t *testing.T) {
	srv := testutil.NewTestServer()
	handler := srv.Handler()

	req := testutil.CreateHTTPRequest(t, http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "health endpoint")
	testutil.AssertJSONResponse(t, rr, "ok")

	req = testutil.CreateHTTPRequest(t, http.MethodGet, "/stats", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	testutil.AssertHTTPStatus(t, http.StatusOK, rr.Code, "stats endpoint")
	testutil.AssertJSONResponse(t, rr, "ok")

	req = testutil.CreateHTTPRequest(t, http.MethodGet, "/sessions/unknown/analytics", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	testutil.AssertHTTPStatus(t, http.StatusNotFound, rr.Code, "analytics for unknown session")
	testutil.AssertJSONResponse(t, rr, "error")
}
