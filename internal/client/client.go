// Package client talks to the Zenith HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vasu1712/zenith-backend/internal/api/admin"
	"github.com/Vasu1712/zenith-backend/internal/models"
	"github.com/Vasu1712/zenith-backend/internal/registration"
)

// StatusError is a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Client is a small API client. Token, when set, is sent as a bearer
// token on admin requests.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

// New returns a client for baseURL with a 10s request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// statusError extracts {"message": ...} bodies, falling back to plain text.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
		return &StatusError{Code: resp.StatusCode, Message: msg.Message}
	}
	return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// Submit sends one registration. It implements registration.Submitter.
func (c *Client) Submit(ctx context.Context, f registration.Form) error {
	return c.do(ctx, http.MethodPost, "/api/v1/registrations", f, nil)
}

// Login authenticates as admin and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*admin.LoginResponse, error) {
	in := map[string]string{"email": email, "password": password}
	var out admin.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/admin/login", in, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

// ListRegistrations returns every stored registration.
func (c *Client) ListRegistrations(ctx context.Context) ([]*models.Registration, error) {
	var out admin.RegistrationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/registrations", nil, &out); err != nil {
		return nil, err
	}
	return out.Registrations, nil
}

// Stats returns the admin statistics.
func (c *Client) Stats(ctx context.Context) (*admin.StatsResponse, error) {
	var out admin.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
