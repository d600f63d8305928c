// Package feed drives a running pitchside server with realistic match
// traffic: starting matches, posting absolute score updates, finishing
// them, and finally reading back the summary.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// Client is a thin HTTP client for the pitchside API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type matchBody struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"home_score,omitempty"`
	AwayScore int    `json:"away_score,omitempty"`
}

// StartMatch calls POST /matches.
func (c *Client) StartMatch(ctx context.Context, home, away string) error {
	return c.send(ctx, http.MethodPost, "/matches", matchBody{Home: home, Away: away}, http.StatusCreated)
}

// UpdateScore calls PUT /matches with absolute scores.
func (c *Client) UpdateScore(ctx context.Context, home, away string, homeScore, awayScore int) error {
	body := matchBody{Home: home, Away: away, HomeScore: homeScore, AwayScore: awayScore}
	return c.send(ctx, http.MethodPut, "/matches", body, http.StatusOK)
}

// FinishMatch calls DELETE /matches.
func (c *Client) FinishMatch(ctx context.Context, home, away string) error {
	path := "/matches?home=" + url.QueryEscape(home) + "&away=" + url.QueryEscape(away)
	return c.send(ctx, http.MethodDelete, path, nil, http.StatusOK)
}

// FetchSummary calls GET /summary and returns the rendered lines.
func (c *Client) FetchSummary(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/summary", nil)
	if err != nil {
		return nil, fmt.Errorf("build summary request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch summary: unexpected status %d", resp.StatusCode)
	}
	var lines []string
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return lines, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, want int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(payload))
	}
	return nil
}
