package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is the Microsoft Graph v1.0 endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client issues authenticated requests against the Graph API. The HTTP
// client is expected to attach bearer tokens (see the azure package).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Graph client against the production endpoint.
func NewClient(httpClient *http.Client) *Client {
	return NewClientWithBaseURL(httpClient, DefaultBaseURL)
}

// NewClientWithBaseURL creates a Graph client against a custom endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET against the given path (or absolute continuation URL)
// and decodes the response into out. An optional Prefer timezone header asks
// Graph to localize event datetimes.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, preferTimeZone string, out any) error {
	endpoint := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		endpoint = c.baseURL + "/" + strings.TrimLeft(path, "/")
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if preferTimeZone != "" {
		req.Header.Set("Prefer", fmt.Sprintf("outlook.timezone=%q", preferTimeZone))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// PostJSON issues a POST with a JSON body and decodes the response into out
// when out is non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListEvents fetches an event collection and drains every @odata.nextLink
// continuation, concatenating pages in order.
func (c *Client) ListEvents(ctx context.Context, path string, query url.Values, preferTimeZone string) ([]Event, error) {
	var events []Event

	next := path
	nextQuery := query
	for next != "" {
		var page eventPage
		if err := c.GetJSON(ctx, next, nextQuery, preferTimeZone, &page); err != nil {
			return nil, err
		}
		events = append(events, page.Value...)

		// Continuation links are absolute and carry their own query.
		next = page.NextLink
		nextQuery = nil
	}

	return events, nil
}

// decodeAPIError extracts the Graph error envelope from a non-2xx response.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("graph API error (status %d): %s: %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Message)
	}
	return fmt.Errorf("graph API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
