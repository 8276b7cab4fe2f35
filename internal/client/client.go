// ABOUTME: HTTP client for the Voltride rental platform API
// ABOUTME: Wraps REST calls with error handling suitable for CLI and TUI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/voltride/voltride-cli/internal/auth"
)

// ErrMalformedLogin marks a 2xx login response missing its token or user.
// It is an error, never a session.
var ErrMalformedLogin = errors.New("malformed login response: missing token or user")

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client is the API client for the Voltride backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource TokenSource
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTokenSource installs the session token source used for
// authenticated endpoints.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// loginEnvelope covers both envelope shapes the backend uses: token/user
// nested under data, or at the top level.
type loginEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Token string         `json:"token"`
		User  *auth.Identity `json:"user"`
	} `json:"data"`
	Token string         `json:"token"`
	User  *auth.Identity `json:"user"`
}

// LoginResult is a validated token/identity pair from a successful login.
type LoginResult struct {
	Token string
	User  *auth.Identity
}

// Login calls POST /auth/login. A well-formed success yields both a token
// and a user; anything else is an error with a message fit for direct
// display next to the credentials fields.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var env loginEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	token, user := env.Data.Token, env.Data.User
	if token == "" && user == nil {
		token, user = env.Token, env.User
	}
	if token == "" || user == nil {
		return nil, ErrMalformedLogin
	}

	return &LoginResult{Token: token, User: user}, nil
}

// RegisterRequest carries signup fields for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender,omitempty"`
}

// Register calls POST /auth/register. The created account logs in through
// the normal login flow afterwards.
func (c *Client) Register(ctx context.Context, r RegisterRequest) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.handleErrorResponse(resp)
	}
	return nil
}

// Logout calls POST /auth/logout with an explicit token. The token is
// passed in rather than read from the token source because the local
// session may already be cleared by the time this best-effort call runs.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}
	return nil
}

// Me calls GET /users/me with an explicit token. The token is passed in
// rather than read from the token source because this call validates a
// persisted token before any session exists.
func (c *Client) Me(ctx context.Context, token string) (*auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	var env struct {
		Data *auth.Identity `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("invalid response from backend: missing user")
	}
	return env.Data, nil
}

// authorize attaches the bearer token from the token source, if any.
func (c *Client) authorize(req *http.Request) {
	if c.tokenSource == nil {
		return
	}
	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleRequestError converts context errors to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses. A 401 wraps
// auth.ErrUnauthorized so session owners can drop a stale token.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&errResp)

	message := errResp.Message
	if message == "" {
		message = errResp.Error
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if message != "" {
			return fmt.Errorf("%w: %s", auth.ErrUnauthorized, message)
		}
		return auth.ErrUnauthorized
	}

	if decodeErr != nil || message == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", message)
}
