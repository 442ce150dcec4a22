package client

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hostdash/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("user not logged in")
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 16 << 20

type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewAPIClient returns a client for a hostdash server. insecure skips
// certificate verification, for the self-signed localhost certificate.
func NewAPIClient(baseURL string, insecure bool) *APIClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &APIClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

// serverError extracts the message from an error response body.
func serverError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	var body models.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned status: %d", resp.StatusCode)
}

func (c *APIClient) post(path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.HTTPClient.Do(req)
}

func (c *APIClient) getJSON(path string, v any) error {
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	return json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(v)
}

func (c *APIClient) Login(username, password string) error {
	resp, err := c.post("/api/login", models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	return nil
}

func (c *APIClient) Logout(username string) error {
	resp, err := c.post("/api/logout", models.LogoutRequest{Username: username})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return ErrNotLoggedIn
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}
	return nil
}

func (c *APIClient) CurrentUsers() ([]models.SessionRecord, error) {
	var users []models.SessionRecord
	if err := c.getJSON("/api/current_users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *APIClient) RecentUsers() ([]models.SessionRecord, error) {
	var users []models.SessionRecord
	if err := c.getJSON("/api/last_logged_users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *APIClient) SystemStats() (models.SystemStats, error) {
	var stats models.SystemStats
	err := c.getJSON("/api/system_stats", &stats)
	return stats, err
}

func (c *APIClient) Processes() ([]models.Process, error) {
	var procs []models.Process
	if err := c.getJSON("/api/processes", &procs); err != nil {
		return nil, err
	}
	return procs, nil
}

func (c *APIClient) Logs() ([]string, error) {
	var lines []string
	if err := c.getJSON("/api/system_logs", &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *APIClient) Uptime() (string, error) {
	var body models.UptimeResponse
	if err := c.getJSON("/api/system_uptime", &body); err != nil {
		return "", err
	}
	return body.Uptime, nil
}

func (c *APIClient) HealthCheck() (models.HealthResponse, error) {
	var health models.HealthResponse
	err := c.getJSON("/health", &health)
	return health, err
}
