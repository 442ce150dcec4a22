package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"hostdash/internal/credentials"
	"hostdash/internal/server"
	"hostdash/internal/session"
	"hostdash/internal/telemetry"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := session.NewRegistry(credentials.Default())
	agg := telemetry.New(telemetry.NewHost(), telemetry.Config{LogPaths: []string{}})
	srv := server.New(reg, agg, server.Options{FrontendDir: t.TempDir(), Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	ts := newServer(t)
	c := NewAPIClient(ts.URL, false)

	if err := c.Login("user1", "pass1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := c.Login("user1", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	current, err := c.CurrentUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(current) != 1 || current[0].Username != "user1" || current[0].IPAddress != "127.0.0.1" {
		t.Errorf("unexpected current users %+v", current)
	}

	if err := c.Logout("user1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if err := c.Logout("user1"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}

	recent, err := c.RecentUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Username != "user1" {
		t.Errorf("unexpected history %+v", recent)
	}
}

func TestLogsAndHealth(t *testing.T) {
	ts := newServer(t)
	c := NewAPIClient(ts.URL, false)

	lines, err := c.Logs()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 50 || lines[0] != "Log line 1: Sample log entry" {
		t.Errorf("unexpected log lines %q", lines)
	}

	health, err := c.HealthCheck()
	if err != nil || health.Status != "ok" {
		t.Errorf("HealthCheck = %+v, %v", health, err)
	}
}

func TestServerErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"telemetry unavailable: disk /: boom"}`))
	}))
	defer ts.Close()

	_, err := NewAPIClient(ts.URL, false).SystemStats()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected server message in error, got %v", err)
	}
}

func TestInsecureTransport(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	if _, err := NewAPIClient(ts.URL, false).HealthCheck(); err == nil {
		t.Error("expected certificate verification to fail")
	}
	if _, err := NewAPIClient(ts.URL, true).HealthCheck(); err != nil {
		t.Errorf("insecure client should accept the test certificate: %v", err)
	}
}

func TestProfile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := LoadProfile()
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "" {
		t.Errorf("expected no remembered user, got %q", p.Username)
	}

	if err := p.Save("user4"); err != nil {
		t.Fatal(err)
	}
	p2, _ := LoadProfile()
	if p2.Username != "user4" {
		t.Errorf("expected user4, got %q", p2.Username)
	}

	if err := p2.Clear(); err != nil {
		t.Fatal(err)
	}
	p3, _ := LoadProfile()
	if p3.Username != "" {
		t.Errorf("expected cleared profile, got %q", p3.Username)
	}
}
