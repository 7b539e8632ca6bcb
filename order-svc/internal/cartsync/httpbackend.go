package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tableside/order-svc/internal/domain"
)

// HTTPBackend drives a Mirror against the order service's HTTP API. It is
// what a device-side consumer uses; in-process consumers can implement
// Backend directly over the service layer instead.
type HTTPBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPBackend(baseURL string) *HTTPBackend {
	return &HTTPBackend{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Backend = (*HTTPBackend)(nil)
var _ OrderGenerator = (*HTTPBackend)(nil)

func (b *HTTPBackend) LoadCart(ctx context.Context, partyID int) ([]domain.CartItem, error) {
	endpoint := b.BaseURL + "/api/party-cart?party_id=" + url.QueryEscape(strconv.Itoa(partyID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load cart: unexpected status %d", resp.StatusCode)
	}

	var items []domain.CartItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *HTTPBackend) AddCartItem(ctx context.Context, partyID, productID int) error {
	return b.postMutation(ctx, "/api/party-cart/add", map[string]interface{}{
		"party_id":   partyID,
		"product_id": productID,
	})
}

func (b *HTTPBackend) DecreaseCartItem(ctx context.Context, partyID, productID int) error {
	return b.postMutation(ctx, "/api/party-cart/decrease", map[string]interface{}{
		"party_id":   partyID,
		"product_id": productID,
	})
}

func (b *HTTPBackend) GenerateOrder(ctx context.Context, partyID int, sessionToken string) (*domain.Order, error) {
	body, _ := json.Marshal(map[string]interface{}{
		"party_id":      partyID,
		"session_token": sessionToken,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+"/api/orders/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate order: unexpected status %d", resp.StatusCode)
	}

	var order domain.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (b *HTTPBackend) postMutation(ctx context.Context, path string, payload map[string]interface{}) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
