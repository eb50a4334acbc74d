package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/vhelp/assistflow/internal/catalog"
	"github.com/vhelp/assistflow/internal/flow"
	"github.com/vhelp/assistflow/internal/messaging"
	"github.com/vhelp/assistflow/internal/models"
	"github.com/vhelp/assistflow/internal/session"
	"github.com/vhelp/assistflow/internal/store"
)

func sampleAPIBooking(id, userID string) models.Booking {
	return models.Booking{
		ID:           id,
		UserID:       userID,
		ServiceKey:   "1",
		ServiceName:  "Administrative Support",
		HoursPerWeek: 10,
		BusinessType: "Ecommerce",
		Budget:       "$500",
		CreatedAt:    1,
	}
}

func newTestServer() (*Server, *messaging.MockClient, *store.InMemoryStore) {
	archive := store.NewInMemoryStore()
	engine := flow.NewEngine(session.NewManager(0), catalog.Default(), catalog.DefaultFAQs(), nil, archive)
	sender := messaging.NewMockClient()
	return NewServer(engine, sender, archive), sender, archive
}

func postWebhook(t *testing.T, handler http.Handler, from, body string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("From", from)
	form.Set("Body", body)
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestWebhookHandler_RepliesWithTwiML(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.Handler()

	rr := postWebhook(t, handler, "whatsapp:+15551234567", "hi")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("expected XML content type, got %q", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<Response><Message>") {
		t.Errorf("expected TwiML envelope, got %q", body)
	}
	if !strings.Contains(body, "Available Services") {
		t.Errorf("expected menu in reply, got %q", body)
	}
}

func TestWebhookHandler_MissingFrom(t *testing.T) {
	srv, _, _ := newTestServer()
	rr := postWebhook(t, srv.Handler(), "", "hi")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing From, got %d", rr.Code)
	}
}

func TestWebhookHandler_InvalidRecipient(t *testing.T) {
	srv, _, _ := newTestServer()
	rr := postWebhook(t, srv.Handler(), "whatsapp:abc", "hi")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid recipient, got %d", rr.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body: %q", rr.Body.String())
	}
}

func TestAnalyticsHandler(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.Handler()

	// Unknown session is a 404.
	req := httptest.NewRequest(http.MethodGet, "/sessions/15551234567/analytics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rr.Code)
	}

	// After a webhook message the session exists.
	postWebhook(t, handler, "whatsapp:+15551234567", "hi")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"completion_percent":20`) {
		t.Errorf("unexpected analytics body: %q", body)
	}
}

func TestResetHandler(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.Handler()
	postWebhook(t, handler, "whatsapp:+15551234567", "hi")

	req := httptest.NewRequest(http.MethodPost, "/sessions/15551234567/reset", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestDeleteSessionHandler(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.Handler()
	postWebhook(t, handler, "whatsapp:+15551234567", "hi")

	req := httptest.NewRequest(http.MethodDelete, "/sessions/15551234567", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	// Second delete is a 404.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeated delete, got %d", rr.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.Handler()
	postWebhook(t, handler, "whatsapp:+15551234567", "hi")

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"active_sessions":1`) {
		t.Errorf("unexpected stats body: %q", body)
	}
	if !strings.Contains(body, `"total_bookings":0`) {
		t.Errorf("expected booking count in stats, got %q", body)
	}
}

func TestBookingsHandler(t *testing.T) {
	srv, _, archive := newTestServer()
	handler := srv.Handler()

	booking := sampleAPIBooking("b1", "u1")
	if err := archive.AddBooking(booking); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"id":"b1"`) {
		t.Errorf("expected seeded booking in body: %q", rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/bookings?user_id=other", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if strings.Contains(rr.Body.String(), `"id":"b1"`) {
		t.Errorf("expected user filter to exclude booking: %q", rr.Body.String())
	}
}

func TestAgentCallHandler(t *testing.T) {
	srv, sender, _ := newTestServer()
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/calls/agent", strings.NewReader(`{"phone":"+15551234567"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if len(sender.PlacedCalls) != 1 || sender.PlacedCalls[0] != "+15551234567" {
		t.Errorf("expected call recorded, got %v", sender.PlacedCalls)
	}
}

func TestAgentCallHandler_MissingPhone(t *testing.T) {
	srv, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/calls/agent", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing phone, got %d", rr.Code)
	}
}
