package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for CatalogService, the collaborator owning the
// service and provider catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a CatalogService client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListActiveServices returns every service currently open for booking. The
// maintenance pass iterates this list when generating the rolling window.
func (c *Client) ListActiveServices(ctx context.Context) ([]*Service, error) {
	url := fmt.Sprintf("%s/internal/services?active=true", c.baseURL)

	var services []*Service
	if err := c.getJSON(ctx, url, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService fetches one service by ID.
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service); err != nil {
		if err == errNotFound {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

// GetProvider fetches one provider by ID.
func (c *Client) GetProvider(ctx context.Context, providerID int64) (*Provider, error) {
	url := fmt.Sprintf("%s/internal/providers/%d", c.baseURL, providerID)

	var provider Provider
	if err := c.getJSON(ctx, url, &provider); err != nil {
		if err == errNotFound {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// errNotFound is an internal marker translated into the entity-specific
// sentinel by the public methods.
var errNotFound = fmt.Errorf("catalogservice: not found")

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to decoding.
	case http.StatusNotFound:
		return errNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
