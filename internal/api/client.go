package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/healthpulse/companion/internal/session"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// DefaultBaseURL is the default HealthPulse backend URL.
// Override at build time with:
// go build -ldflags "-X github.com/healthpulse/companion/internal/api.DefaultBaseURL=https://api.healthpulse.app"
var DefaultBaseURL = "http://localhost:8000"

// WSBaseURL converts the HTTP base URL to its WebSocket form.
// e.g. "https://api.healthpulse.app" becomes "wss://api.healthpulse.app"
func WSBaseURL(base string) string {
	if strings.HasPrefix(base, "https://") {
		return "wss://" + base[8:]
	}
	if strings.HasPrefix(base, "http://") {
		return "ws://" + base[7:]
	}
	return base
}

// Client is the single choke-point for outbound HTTP calls. It attaches the
// bearer credential from the session store and tears the session down when
// the backend rejects it.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         *session.Store
	onAuthExpired func()
	clientID      string
	verbose       bool
}

// NewClient creates a client bound to a session store.
func NewClient(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
}

// SetAuthExpiredHandler sets the callback fired when a call comes back 401.
// The store is already cleared by the time the handler runs; the handler's
// job is tearing down the push channel and returning the UI to login.
func (c *Client) SetAuthExpiredHandler(handler func()) {
	c.onAuthExpired = handler
}

// SetVerbose enables request logging.
func (c *Client) SetVerbose(v bool) {
	c.verbose = v
}

// SetClientID sets the per-install identifier sent with every request.
func (c *Client) SetClientID(id string) {
	c.clientID = id
}

// do executes a JSON request against the backend. fallback is the generic
// per-operation error message used when the server supplies no detail.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}, fallback string) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	return c.send(req, result, fallback)
}

// doMultipart executes a multipart request. The content type carries the
// writer-assigned boundary, so it must never be overridden.
func (c *Client) doMultipart(ctx context.Context, method, path string, body *bytes.Buffer, contentType string, result interface{}, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerContentType, contentType)

	return c.send(req, result, fallback)
}

func (c *Client) send(req *http.Request, result interface{}, fallback string) error {
	token := c.store.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	if c.verbose {
		log.Printf("[API] %s %s", req.Method, req.URL.Path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// A rejected credential ends the session globally. Unauthenticated calls
	// (login itself) surface their 401 as a normal error instead.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.expireSession()
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.StatusCode, respBody, fallback)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) expireSession() {
	if c.verbose {
		log.Printf("[API] session rejected by backend, clearing credentials")
	}
	_ = c.store.Clear()
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

func (c *Client) get(ctx context.Context, path string, result interface{}, fallback string) error {
	return c.do(ctx, http.MethodGet, path, nil, result, fallback)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}, fallback string) error {
	return c.do(ctx, http.MethodPost, path, body, result, fallback)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}, fallback string) error {
	return c.do(ctx, http.MethodPatch, path, body, result, fallback)
}
