package ctl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sessiond/pkg/types"
)

// Client talks to a running sessiond over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client for the given base URL (e.g. http://127.0.0.1:8080).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

// decodeResponse decodes a 2xx JSON body into out, or surfaces the
// daemon's error payload as a Go error.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	var apiErr types.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

// Status fetches the coordinator snapshot.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.getJSON(ctx, "/status", &out)
	return out, err
}

// Engines lists the selectable engines.
func (c *Client) Engines(ctx context.Context) (types.EnginesResponse, error) {
	var out types.EnginesResponse
	err := c.getJSON(ctx, "/engines", &out)
	return out, err
}

// Switch requests a mode change and returns the resulting status.
func (c *Client) Switch(ctx context.Context, mode, engine string) (types.StatusResponse, error) {
	var out types.StatusResponse
	err := c.postJSON(ctx, "/switch", types.SwitchRequest{Mode: types.Mode(mode), Engine: engine}, &out)
	return out, err
}

// Reset clears AR placements on the active session.
func (c *Client) Reset(ctx context.Context) error {
	return c.postJSON(ctx, "/reset", nil, nil)
}

// Place anchors a marker at the currently detected surface.
func (c *Client) Place(ctx context.Context) (types.PlaceResponse, error) {
	var out types.PlaceResponse
	err := c.postJSON(ctx, "/place", nil, &out)
	return out, err
}

// Watch tails the daemon's SSE event stream, writing one line per event
// to w until the context is canceled or the stream ends.
func (c *Client) Watch(ctx context.Context, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	// Streaming request: the client-level timeout would kill the tail.
	httpc := &http.Client{Transport: c.HTTP.Transport}
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	sc := bufio.NewScanner(resp.Body)
	var event string
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			fmt.Fprintf(w, "%s\t%s\n", event, strings.TrimPrefix(line, "data: "))
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
