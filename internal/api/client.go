// Package api is the single point of HTTP access to the backend. It builds
// JSON requests, attaches the bearer token when one is supplied, and maps
// transport, status and decode failures to typed errors. There is no retry:
// a failed attempt surfaces immediately to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dmorita/sage/internal/model"
)

const defaultTimeout = 30 * time.Second

// Client talks to the backend API. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config carries the knobs for constructing a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string
	// HTTPClient overrides the default client; mainly for tests.
	HTTPClient *http.Client
	// Logger defaults to a no-op logger when nil.
	Logger *zap.Logger
}

// New builds a Client for the given base URL.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Register creates a new account and returns the server's confirmation
// message. It never logs the caller in.
func (c *Client) Register(ctx context.Context, reg model.UserRegistration) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "auth/register", reg, "")
	if err != nil {
		return "", err
	}

	var resp model.RegistrationResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, creds model.UserLogin) (model.AuthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "auth/login", creds, "")
	if err != nil {
		return model.AuthResponse{}, err
	}

	var resp model.AuthResponse
	if err := c.do(req, &resp); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// SendPrompt submits a prompt to the AI endpoint on behalf of the token's
// user. The backend expects the body to be the raw JSON-encoded string, not
// an object wrapping it.
func (c *Client) SendPrompt(ctx context.Context, prompt, token string) (model.AIResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "ai/prompt", prompt, token)
	if err != nil {
		return model.AIResponse{}, err
	}

	var resp model.AIResponse
	if err := c.do(req, &resp); err != nil {
		return model.AIResponse{}, err
	}
	return resp, nil
}

// newRequest composes baseURL/endpoint, JSON-encodes body when non-nil and
// sets the content type and optional bearer token.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any, token string) (*http.Request, error) {
	raw := c.baseURL + "/" + endpoint
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, raw, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a 2xx body into out.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
