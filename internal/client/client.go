// Package client is the HTTP client for the calendard API. It implements
// the repository and suggestion-provider surfaces consumed by the sync
// engine.
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

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/suggest"
)

// Client talks to a calendard server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListEvents fetches all events with date in [from, to] inclusive.
func (c *Client) ListEvents(ctx context.Context, from, to string) ([]model.Event, error) {
	url := fmt.Sprintf("%s/api/events?from=%s&to=%s", c.baseURL, from, to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var events []model.Event
	if err := c.do(req, http.StatusOK, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

type createRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Text string `json:"text"`
}

// CreateEvent stores a new event. idemKey, when non-empty, is sent as an
// Idempotency-Key header so a retried create lands on the same row.
func (c *Client) CreateEvent(ctx context.Context, date, timeStr, text, idemKey string) (*model.Event, error) {
	body, err := json.Marshal(createRequest{Date: date, Time: timeStr, Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/events", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	var event model.Event
	if err := c.do(req, http.StatusCreated, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &event, nil
}

type updateRequest struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

// UpdateEvent replaces the time and text of the event with the given id.
func (c *Client) UpdateEvent(ctx context.Context, id int64, timeStr, text string) (*model.Event, error) {
	body, err := json.Marshal(updateRequest{Time: timeStr, Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/api/events/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var event model.Event
	if err := c.do(req, http.StatusOK, &event); err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	return &event, nil
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/api/events/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if err := c.do(req, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

type suggestRequest struct {
	Prompt   string `json:"prompt"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// Suggest asks the server's suggestion endpoint for proposed events in
// [from, to]. The server rebuilds the existing-events context from its
// own store, so the slice passed here is not transmitted. Failures are
// reported as *suggest.ProviderError so the merge layer aborts cleanly.
func (c *Client) Suggest(ctx context.Context, prompt, from, to string, _ []model.Event) ([]model.Suggestion, error) {
	body, err := json.Marshal(suggestRequest{Prompt: prompt, FromDate: from, ToDate: to})
	if err != nil {
		return nil, &suggest.ProviderError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/suggest-schedule", bytes.NewReader(body))
	if err != nil {
		return nil, &suggest.ProviderError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var suggestions []model.Suggestion
	if err := c.do(req, http.StatusOK, &suggestions); err != nil {
		return nil, &suggest.ProviderError{Op: "request", Err: err}
	}
	return suggestions, nil
}

func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("server returned %s", serverError(resp))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverError extracts the API's {"error": "..."} message when present.
func serverError(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Error != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
