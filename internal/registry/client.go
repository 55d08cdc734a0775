package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches the published version list for one package from an
// npm-compatible registry.
type Client struct {
	baseURL    string
	pkg        string
	httpClient *http.Client
}

// New creates a Client for the given registry base URL and package name.
// A zero timeout means no client-side timeout; callers bound the fetch via
// context instead.
func New(baseURL, pkg string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		pkg:     pkg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// packument mirrors the registry package document. Only the keys of the
// versions map are used; per-version metadata is untrusted and discarded.
type packument struct {
	Versions map[string]json.RawMessage `json:"versions"`
}

// FetchVersions issues a single GET for the package document and returns the
// version tags. No retries: one failed attempt is the caller's problem.
func (c *Client) FetchVersions(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+c.pkg, nil)
	if err != nil {
		return nil, fmt.Errorf("creating registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", c.pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, c.pkg)
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}

	tags := make([]string, 0, len(doc.Versions))
	for tag := range doc.Versions {
		tags = append(tags, tag)
	}
	return tags, nil
}
