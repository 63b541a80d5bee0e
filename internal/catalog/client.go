package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable wraps any network, status or parse failure talking to the
// catalog API. The client never retries; that decision belongs to callers.
var ErrUnavailable = errors.New("wine catalog unavailable")

// Client fetches a category's wine list from the external catalog API. It
// keeps no state and no cache so two sessions can never share a fetched list.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET for the category and returns the raw records in
// API order. An empty list is a valid result meaning "no wines available".
func (c *Client) Fetch(ctx context.Context, category string) ([]Record, error) {
	if !IsKnownCategory(category) {
		return nil, fmt.Errorf("unknown wine category %q", category)
	}

	url := c.baseURL + "/" + category
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var wines []Record
	if err := json.NewDecoder(resp.Body).Decode(&wines); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return wines, nil
}
