package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rustkas/mini-ledger-go/entry"
)

// Client fetches slots from a leader's HTTP API. It implements
// node.SlotFetcher so node.Sync can poll a real leader process.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client against a leader listening at baseURL (e.g.
// "http://127.0.0.1:8080").
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// FetchSlot implements node.SlotFetcher by calling GET /slots/{n}.
func (c *Client) FetchSlot(ctx context.Context, n uint64) (*entry.Slot, bool, error) {
	url := fmt.Sprintf("%s/slots/%d", c.baseURL, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("httpapi: client: unexpected status %d fetching slot %d", resp.StatusCode, n)
	}

	var slot entry.Slot
	if err := json.NewDecoder(resp.Body).Decode(&slot); err != nil {
		return nil, false, fmt.Errorf("httpapi: client: decode slot %d: %w", n, err)
	}
	return &slot, true, nil
}
