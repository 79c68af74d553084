// Package paystack is a minimal client for the Paystack transaction
// API: initialize, verify, and webhook signature validation.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	secret  string
	hc      *http.Client
}

// New builds a client with an explicit timeout on every outbound call.
// A timed-out initialize or verify is retryable; callers must not treat
// it as a terminal payment failure.
func New(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

type InitializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"` // minor units
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyData struct {
	Status    string `json:"status"` // "success", "failed", "abandoned", ...
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	PaidAt    string `json:"paid_at"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out InitializeData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*VerifyData, error) {
	var out VerifyData
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("paystack: decode response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 || !env.Status {
		return fmt.Errorf("paystack: %s (%d)", env.Message, resp.StatusCode)
	}
	return json.Unmarshal(env.Data, out)
}
