package xivapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrNotFound is returned when XIVAPI reports that the item does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrMalformed is returned for any response that is neither a name nor a not-found code.
	ErrMalformed = errors.New("malformed item response")
)

type itemResponse struct {
	Fields *struct {
		Name *string `json:"Name"`
	} `json:"fields"`
	Code    *int   `json:"code"`
	Message string `json:"message"`
}

// Client looks up item names in the XIVAPI item sheet.
type Client struct {
	client   *resty.Client
	language string
}

// NewClient creates a new XIVAPI client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{client: client, language: language}
}

// ItemName fetches the display name of an item.
// It returns ErrNotFound when the sheet has no such row and ErrMalformed for any
// other response shape.
func (c *Client) ItemName(ctx context.Context, itemID int64) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(itemID, 10)).
		SetQueryParams(map[string]string{
			"fields":   "Name",
			"language": c.language,
		}).
		Get("/api/sheet/Item/{id}")
	if err != nil {
		return "", fmt.Errorf("item %d lookup failed: %w", itemID, err)
	}

	var body itemResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: item %d: status %d: %v", ErrMalformed, itemID, resp.StatusCode(), err)
	}

	if body.Fields == nil {
		if body.Code != nil && *body.Code == http.StatusNotFound {
			return "", fmt.Errorf("%w: item %d", ErrNotFound, itemID)
		}
		return "", fmt.Errorf("%w: item %d: status %d: no fields in response", ErrMalformed, itemID, resp.StatusCode())
	}
	if body.Fields.Name == nil {
		return "", fmt.Errorf("%w: item %d: no Name field", ErrMalformed, itemID)
	}

	return *body.Fields.Name, nil
}
