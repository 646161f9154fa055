package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemPayload is one line of an order pushed to the sales module.
type OrderItemPayload struct {
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest is the body of POST /api/orders/create. The
// idempotency key lets the sales side drop duplicate pushes when the
// local synced-flag write fails after a successful remote call.
type CreateOrderRequest struct {
	OrderType      string             `json:"order_type"`
	OrderStatus    string             `json:"order_status"`
	CustomerName   string             `json:"customer_name"`
	CustomerPhone  string             `json:"customer_phone,omitempty"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Items          []OrderItemPayload `json:"items"`
	Notes          string             `json:"notes,omitempty"`
	IdempotencyKey string             `json:"idempotency_key"`
}

// Dish is one entry of GET /api/dishes/list.
type Dish struct {
	ItemCode   string          `json:"item_code"`
	ItemName   string          `json:"item_name"`
	Category   string          `json:"category"`
	IsHeritage bool            `json:"is_heritage"`
	Price      decimal.Decimal `json:"price"`
}

// SalesAPI is the sales-module surface the special module syncs into.
type SalesAPI interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (orderID string, err error)
	UpdateOrder(ctx context.Context, orderID string, fields map[string]interface{}) error
	GetDishes(ctx context.Context) ([]Dish, error)
}

// HTTPSalesAPI talks to the sales module over its key-authenticated
// HTTP API.
type HTTPSalesAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPSalesAPI(baseURL, apiKey string) *HTTPSalesAPI {
	return &HTTPSalesAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *HTTPSalesAPI) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sales api %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *HTTPSalesAPI) CreateOrder(ctx context.Context, req CreateOrderRequest) (string, error) {
	var resp struct {
		OrderID string `json:"order_id"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/orders/create", req, &resp); err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", fmt.Errorf("sales api returned no order_id")
	}
	return resp.OrderID, nil
}

func (a *HTTPSalesAPI) UpdateOrder(ctx context.Context, orderID string, fields map[string]interface{}) error {
	return a.do(ctx, http.MethodPut, "/api/orders/"+orderID, fields, nil)
}

func (a *HTTPSalesAPI) GetDishes(ctx context.Context) ([]Dish, error) {
	var resp struct {
		Dishes []Dish `json:"dishes"`
	}
	if err := a.do(ctx, http.MethodGet, "/api/dishes/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Dishes, nil
}
