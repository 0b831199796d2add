package universalis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DataCenter is a group of worlds sharing a market region.
type DataCenter struct {
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Worlds []int64 `json:"worlds"`
}

// World is an entry of the global world directory.
type World struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Client reads the Universalis world directory.
type Client struct {
	client *resty.Client
}

// NewClient creates a new Universalis client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// DataCenters lists every data center with its member world ids.
func (c *Client) DataCenters(ctx context.Context) ([]DataCenter, error) {
	var dcs []DataCenter
	if err := c.getJSON(ctx, "/api/v2/data-centers", &dcs); err != nil {
		return nil, err
	}
	return dcs, nil
}

// Worlds lists every known world.
func (c *Client) Worlds(ctx context.Context) ([]World, error) {
	var worlds []World
	if err := c.getJSON(ctx, "/api/v2/worlds", &worlds); err != nil {
		return nil, err
	}
	return worlds, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("request %s failed with status %d", path, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
