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

	"github.com/naveenspark/roster/pkg/domain"
)

// RequestIDHeader carries the per-request id. The reference server's chi
// middleware picks it up, so client and server log lines correlate.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody caps how much of a rejection body is read.
const maxErrorBody = 1 << 20

// Client is the activities API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new API client. Requests carry no timeout; they resolve or
// fail according to the transport.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx; the next request made with ctx sends it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id attached with WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestID(ctx context.Context) string {
	if id := RequestIDFrom(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// ListActivities fetches the whole roster in server order.
func (c *Client) ListActivities(ctx context.Context) (*domain.Roster, error) {
	var r domain.Roster
	if err := c.get(ctx, "/activities", &r); err != nil {
		return nil, fmt.Errorf("client.ListActivities: %w", err)
	}
	return &r, nil
}

// Signup registers email for the activity and returns the server's message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	var resp domain.MessageResponse
	if err := c.doRequest(ctx, http.MethodPost, activityPath(activity, "signup", email), &resp); err != nil {
		return "", fmt.Errorf("client.Signup: %w", err)
	}
	return resp.Message, nil
}

// Cancel removes email from the activity and returns the server's message.
func (c *Client) Cancel(ctx context.Context, activity, email string) (string, error) {
	var resp domain.MessageResponse
	if err := c.doRequest(ctx, http.MethodDelete, activityPath(activity, "cancel", email), &resp); err != nil {
		return "", fmt.Errorf("client.Cancel: %w", err)
	}
	return resp.Message, nil
}

// Participants fetches one activity's participant detail.
func (c *Client) Participants(ctx context.Context, activity string) (*domain.ParticipantList, error) {
	var p domain.ParticipantList
	if err := c.get(ctx, "/activities/"+url.PathEscape(activity)+"/participants", &p); err != nil {
		return nil, fmt.Errorf("client.Participants: %w", err)
	}
	return &p, nil
}

func activityPath(activity, action, email string) string {
	params := url.Values{}
	params.Set("email", email)
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?" + params.Encode()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return newHTTPError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
