// Package api provides HTTP handlers for AssistFlow endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vhelp/assistflow/internal/messaging"
	"github.com/vhelp/assistflow/internal/models"
)

// webhookHandler is the Twilio WhatsApp webhook. Twilio posts inbound
// messages as form fields; the TwiML document in the response body is the
// reply delivered back to the user.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if err := r.ParseForm(); err != nil {
		slog.Warn("Server.webhookHandler: failed to parse form", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid form data"))
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	if from == "" {
		slog.Warn("Server.webhookHandler: missing From field")
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing From field"))
		return
	}

	userID, err := messaging.ValidateAndCanonicalizeRecipient(from)
	if err != nil {
		slog.Warn("Server.webhookHandler: recipient validation failed", "error", err, "from", from)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	reply := s.engine.HandleMessage(userID, body)
	slog.Info("Server.webhookHandler: message handled", "userID", userID, "replyLength", len(reply))
	writeTwiMLResponse(w, reply)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{
		"service": "assistflow",
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	}))
}

// statsHandler reports aggregate counters.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"active_sessions": s.engine.Sessions().ActiveCount(),
	}
	if s.archive != nil {
		bookings, err := s.archive.ListBookings()
		if err != nil {
			slog.Error("Server.statsHandler: failed to list bookings", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load booking stats"))
			return
		}
		stats["total_bookings"] = len(bookings)
	}
	writeJSONResponse(w, http.StatusOK, models.Success(stats))
}

// analyticsHandler returns the analytics snapshot for one session.
func (s *Server) analyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	summary, ok := s.engine.Summarize(userID)
	if !ok {
		slog.Debug("Server.analyticsHandler: session not found", "userID", userID)
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(summary))
}

// resetHandler restarts a user's flow, keeping their preferences.
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if err := s.engine.Sessions().Reset(userID, true); err != nil {
		slog.Warn("Server.resetHandler: reset failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}
	slog.Info("Server.resetHandler: session reset", "userID", userID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session reset", nil))
}

// deleteSessionHandler removes a session entirely.
func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if err := s.engine.Sessions().Delete(userID); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
			return
		}
		slog.Error("Server.deleteSessionHandler: delete failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to delete session"))
		return
	}
	slog.Info("Server.deleteSessionHandler: session deleted", "userID", userID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session deleted", nil))
}

// bookingsHandler lists archived bookings, optionally filtered by user.
func (s *Server) bookingsHandler(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Booking archive not configured"))
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		bookings, err = s.archive.ListBookingsByUser(userID)
	} else {
		bookings, err = s.archive.ListBookings()
	}
	if err != nil {
		slog.Error("Server.bookingsHandler: failed to list bookings", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list bookings"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(bookings))
}

// agentCallRequest is the payload for the agent call bridge endpoint.
type agentCallRequest struct {
	Phone string `json:"phone"`
}

// agentCallHandler places an outbound call to the user and bridges it to the
// configured agent number.
func (s *Server) agentCallHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if s.sender == nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Call bridging not configured"))
		return
	}

	var req agentCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.agentCallHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.Phone == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Missing phone field"))
		return
	}

	if err := s.sender.PlaceAgentCall(context.Background(), req.Phone); err != nil {
		slog.Error("Server.agentCallHandler: failed to place call", "error", err, "phone", req.Phone)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to place call"))
		return
	}
	slog.Info("Server.agentCallHandler: agent call placed", "phone", req.Phone)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Call placed", nil))
}
