package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Transport executes a single API request. HTTPTransport is the network
// implementation; StatsTransport and DebugTransport wrap another Transport.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f.
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Request describes one API call.
type Request struct {
	Op     string // Logical operation (e.g., "leagues.list"), used for logs and metrics
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Response is a successful (status < 400) API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIError represents an error returned by the API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error returns the error string.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("client: API error (status %d, request %s): %s", e.StatusCode, e.RequestID, e.Message)
	}
	return fmt.Sprintf("client: API error (status %d): %s", e.StatusCode, e.Message)
}

// HTTPTransport performs requests over HTTP against a base URL.
type HTTPTransport struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewHTTPTransport returns an HTTPTransport for baseURL.
func NewHTTPTransport(baseURL string, httpClient *http.Client) (*HTTPTransport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q: scheme and host are required", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPTransport{baseURL: u, httpClient: httpClient}, nil
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	u := t.baseURL.JoinPath(req.Path)
	u.RawQuery = req.Query.Encode()

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("X-Request-Id", requestID)

	resp, err := t.httpClient.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("client: connection error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			RequestID:  requestID,
		}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// errorMessage extracts the message of an API error body, falling back to
// the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Message != "" && payload.Error != "":
			return payload.Error + ": " + payload.Message
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
