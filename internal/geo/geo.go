// Package geo talks to an external routing service to estimate travel
// distance between an employee's home address and an assignment's address.
// The service is optional and every failure is non-fatal to callers.
package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/roosterplan/backend/internal/config"
)

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns nil when no base URL is configured, which disables
// travel distance estimation entirely.
func NewClient(cfg *config.Config) *Client {
	if cfg.Geo.BaseURL == "" {
		return nil
	}
	return &Client{
		baseURL: cfg.Geo.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.Geo.RequestTimeout) * time.Second,
		},
	}
}

// Distance asks the routing service for the driving distance in kilometers
// between two addresses.
func (c *Client) Distance(fromAddress, toAddress string) (float64, error) {
	endpoint := fmt.Sprintf("%s/route/distance?from=%s&to=%s",
		c.baseURL, url.QueryEscape(fromAddress), url.QueryEscape(toAddress))

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var body struct {
		DistanceKm float64 `json:"distanceKm"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	return body.DistanceKm, nil
}
