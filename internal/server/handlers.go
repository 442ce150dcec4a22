package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"hostdash/internal/models"
	"hostdash/internal/session"
	"hostdash/internal/telemetry"
)

// maxBodySize bounds login/logout request bodies.
const maxBodySize = 1 << 20

// ErrMalformedRequest is returned for bodies that are not the expected JSON.
var ErrMalformedRequest = errors.New("malformed request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

// decodeBody requires the body to be exactly one JSON object.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return fmt.Errorf("%w: body is not a JSON object", ErrMalformedRequest)
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrMalformedRequest)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return nil
}

// clientIP returns the peer address without its port. When RealIP ran,
// RemoteAddr is already a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.metrics.logins.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rec, err := s.sessions.Login(req.Username, req.Password, clientIP(r))
	if errors.Is(err, session.ErrUnauthorized) {
		s.metrics.logins.WithLabelValues("unauthorized").Inc()
		s.log.Warn().Str("username", req.Username).Str("ip", clientIP(r)).Msg("login rejected")
		writeJSON(w, http.StatusUnauthorized, models.StatusResponse{Status: "failure", Message: "Invalid credentials"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.metrics.logins.WithLabelValues("success").Inc()
	s.log.Info().Str("username", rec.Username).Str("ip", rec.IPAddress).Msg("login")
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "success", Message: "Login successful"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.metrics.logouts.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	err := s.sessions.Logout(req.Username)
	if errors.Is(err, session.ErrNotLoggedIn) {
		s.metrics.logouts.WithLabelValues("not_logged_in").Inc()
		writeJSON(w, http.StatusBadRequest, models.StatusResponse{Status: "failure", Message: "User not logged in"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.metrics.logouts.WithLabelValues("success").Inc()
	s.log.Info().Str("username", req.Username).Msg("logout")
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "success", Message: "Logout successful"})
}

func (s *Server) handleCurrentUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.ListCurrent())
}

func (s *Server) handleLastLoggedUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.ListRecent())
}

// telemetryFailed logs and reports a host query failure.
func (s *Server) telemetryFailed(w http.ResponseWriter, source string, err error) {
	s.metrics.telemetryErrors.WithLabelValues(source).Inc()
	s.log.Error().Err(err).Str("source", source).Msg("telemetry query failed")
	writeError(w, http.StatusInternalServerError, err)
}

func (s *Server) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.telemetry.CPUMemoryDisk(r.Context())
	if err != nil {
		s.telemetryFailed(w, "system_stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleProcesses(w http.ResponseWriter, r *http.Request) {
	procs, err := s.telemetry.Processes(r.Context())
	if err != nil {
		s.telemetryFailed(w, "processes", err)
		return
	}
	writeJSON(w, http.StatusOK, procs)
}

func (s *Server) handleSystemLogs(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.LogLimit
	if limit <= 0 {
		limit = telemetry.DefaultLogLimit
	}
	lines, err := s.telemetry.Logs(r.Context(), limit)
	if err != nil {
		s.telemetryFailed(w, "system_logs", err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) handleSystemUptime(w http.ResponseWriter, r *http.Request) {
	uptime, err := s.telemetry.Uptime(r.Context())
	if err != nil {
		s.telemetryFailed(w, "system_uptime", err)
		return
	}
	writeJSON(w, http.StatusOK, models.UptimeResponse{Uptime: uptime})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
