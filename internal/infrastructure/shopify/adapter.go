package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shoplens/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Adapter implements integration.CommerceGateway against the Shopify
// Admin REST API. One adapter serves all tenants; the store credentials
// arrive per call.
type Adapter struct {
	config     *Config
	httpClient *http.Client
}

var _ integration.CommerceGateway = (*Adapter)(nil)

// NewAdapter creates a new Shopify adapter with the given configuration
func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}, nil
}

// FetchProducts fetches one page of products for the store
func (a *Adapter) FetchProducts(ctx context.Context, store integration.StoreCredentials) ([]integration.RawProduct, error) {
	records, err := a.fetchList(ctx, store, "products.json", "products", nil)
	if err != nil {
		return nil, err
	}
	products := make([]integration.RawProduct, len(records))
	for i, r := range records {
		products[i] = integration.RawProduct{RawRecord: r}
	}
	return products, nil
}

// FetchCustomers fetches one page of customers for the store
func (a *Adapter) FetchCustomers(ctx context.Context, store integration.StoreCredentials) ([]integration.RawCustomer, error) {
	records, err := a.fetchList(ctx, store, "customers.json", "customers", nil)
	if err != nil {
		return nil, err
	}
	customers := make([]integration.RawCustomer, len(records))
	for i, r := range records {
		customers[i] = integration.RawCustomer{RawRecord: r}
	}
	return customers, nil
}

// FetchOrders fetches one page of orders for the store. status=any makes
// the platform include closed and cancelled orders.
func (a *Adapter) FetchOrders(ctx context.Context, store integration.StoreCredentials) ([]integration.RawOrder, error) {
	records, err := a.fetchList(ctx, store, "orders.json", "orders", url.Values{"status": {"any"}})
	if err != nil {
		return nil, err
	}
	orders := make([]integration.RawOrder, len(records))
	for i, r := range records {
		orders[i] = integration.RawOrder{RawRecord: r}
	}
	return orders, nil
}

// fetchList performs one GET against the Admin API and decodes the list
// under the given envelope key
func (a *Adapter) fetchList(ctx context.Context, store integration.StoreCredentials, resource, envelopeKey string, extra url.Values) ([]integration.RawRecord, error) {
	body, err := a.doRequest(ctx, store, resource, extra)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrGatewayInvalidResponse, err)
	}

	raw, ok := envelope[envelopeKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", integration.ErrGatewayInvalidResponse, envelopeKey)
	}

	// UseNumber keeps 64-bit platform IDs exact
	var records []integration.RawRecord
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrGatewayInvalidResponse, err)
	}
	return records, nil
}

// doRequest performs a single authenticated GET against one store
func (a *Adapter) doRequest(ctx context.Context, store integration.StoreCredentials, resource string, extra url.Values) ([]byte, error) {
	values := url.Values{}
	values.Set("limit", fmt.Sprintf("%d", a.config.PageSize))
	for k, vs := range extra {
		for _, v := range vs {
			values.Add(k, v)
		}
	}

	baseURL := a.config.BaseURLOverride
	if baseURL == "" {
		baseURL = "https://" + store.ShopDomain
	}
	endpoint := fmt.Sprintf("%s/admin/api/%s/%s?%s", baseURL, a.config.APIVersion, resource, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}

	req.Header.Set("X-Shopify-Access-Token", store.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s HTTP %d", integration.ErrGatewayRequestFailed, resource, resp.StatusCode)
	}

	return body, nil
}
