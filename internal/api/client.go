package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client queries a running daemon over its HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient targets the daemon at host:port.
func NewClient(host string, port int) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (*DaemonStatus, error) {
	var status DaemonStatus
	if err := c.get(ctx, "/api/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Current fetches the last resolved track and set.
func (c *Client) Current(ctx context.Context) (*CurrentResponse, error) {
	var current CurrentResponse
	if err := c.get(ctx, "/api/current", nil, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

// Sets lists library files matching query, all files when query is empty.
func (c *Client) Sets(ctx context.Context, query string) ([]SetEntry, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	var resp SetListResponse
	if err := c.get(ctx, "/api/sets", params, &resp); err != nil {
		return nil, err
	}
	return resp.Sets, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
