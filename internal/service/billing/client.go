package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the payment provider's HTTP API.
type Client struct {
	httpClient *http.Client
	secretKey  string

	// Overridable base URL for testing.
	baseURL string
}

// NewClient creates a provider client authenticated by the secret key.
func NewClient(secretKey, baseURL string) (*Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("billing secret key is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		secretKey:  secretKey,
		baseURL:    baseURL,
	}, nil
}

// LineItem is one priced item of a checkout session.
type LineItem struct {
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// SessionRequest describes the hosted checkout page to create.
type SessionRequest struct {
	Mode              string     `json:"mode"`
	LineItems         []LineItem `json:"line_items"`
	TrialPeriodDays   int        `json:"trial_period_days,omitempty"`
	SuccessURL        string     `json:"success_url"`
	CancelURL         string     `json:"cancel_url"`
	ClientReferenceID string     `json:"client_reference_id"`
}

// Session is the provider's answer: a hosted page the caller redirects to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession creates a hosted checkout session.
func (c *Client) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding session request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building session request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling payment provider: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, respBody)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("decoding provider session: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("provider session has no url")
	}
	return &session, nil
}
