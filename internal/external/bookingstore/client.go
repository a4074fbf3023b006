// Package bookingstore is the HTTP client for the booking API service that
// owns booking and contact records.
package bookingstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/booking"
	"caligold/internal/domain/contact"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var (
	_ booking.Store = (*Client)(nil)
	_ contact.Store = (*Client)(nil)
)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope matches the {"data": ...} wrapper the booking API puts around
// every successful response.
type envelope[T any] struct {
	Data T `json:"data"`
}

// CreateBooking persists a booking record downstream.
func (c *Client) CreateBooking(ctx context.Context, req booking.CreateRequest) (booking.Created, error) {
	var out booking.Created
	if err := c.post(ctx, "/public/bookings", req, &out); err != nil {
		return booking.Created{}, err
	}
	return out, nil
}

// CreateContact persists a contact form submission downstream.
func (c *Client) CreateContact(ctx context.Context, req contact.Request) (contact.Saved, error) {
	var out contact.Saved
	if err := c.post(ctx, "/public/contact", req, &out); err != nil {
		return contact.Saved{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	j, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(j))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: %s: %s", apperror.ErrUpstream, resp.Status, string(raw))
	}

	if out != nil {
		env := envelope[json.RawMessage]{}
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		payload := env.Data
		if len(payload) == 0 {
			// Some deployments return the record bare, without the wrapper.
			payload = raw
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
