// Package client is a typed HTTP client for the NetCanvas API. It carries
// no retry or timeout policy beyond the transport defaults; a failed call
// is reported once and must be retried by the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/villeh/netcanvas/internal/models"
)

// Client talks to one NetCanvas API base URL (e.g. http://localhost:3001/api).
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Health is the GET /health response.
type Health struct {
	OK bool `json:"ok"`
	DB bool `json:"db"`
}

// apiError is the JSON error body every failure carries.
type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// do runs one request and decodes the response into out (when non-nil).
// Failures come back as one-line human-readable errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp, method, path)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response, method, path string) error {
	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("%s %s: server returned %d", method, path, resp.StatusCode)
	}
	if len(body.Fields) > 0 {
		parts := make([]string, 0, len(body.Fields))
		for f, reason := range body.Fields {
			parts = append(parts, f+" "+reason)
		}
		return fmt.Errorf("%s: %s", body.Error, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%s", body.Error)
}

// ── Endpoints ─────────────────────────────────────────────────────────────────

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) Topology(ctx context.Context) (*models.Graph, error) {
	var g models.Graph
	if err := c.do(ctx, http.MethodGet, "/topology", nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *Client) Device(ctx context.Context, id uint) (*models.Device, error) {
	var dev models.Device
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/devices/%d", id), nil, &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

func (c *Client) CreateDevice(ctx context.Context, in *models.DeviceCreate) (*models.Device, error) {
	var dev models.Device
	if err := c.do(ctx, http.MethodPost, "/devices", in, &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

func (c *Client) UpdateDevice(ctx context.Context, id uint, in *models.DeviceUpdate) (*models.Device, error) {
	var dev models.Device
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/devices/%d", id), in, &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

func (c *Client) UpdateDevicePosition(ctx context.Context, id uint, x, y float64) (*models.Device, error) {
	var dev models.Device
	in := models.PositionUpdate{X: &x, Y: &y}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/devices/%d/position", id), &in, &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/devices/%d", id), nil, nil)
}

func (c *Client) Links(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := c.do(ctx, http.MethodGet, "/links", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) CreateLink(ctx context.Context, in *models.LinkCreate) (*models.Link, error) {
	var link models.Link
	if err := c.do(ctx, http.MethodPost, "/links", in, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) UpdateLink(ctx context.Context, id uint, in *models.LinkUpdate) (*models.Link, error) {
	var link models.Link
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/links/%d", id), in, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DeleteLink(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/links/%d", id), nil, nil)
}
