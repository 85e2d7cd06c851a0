package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	"github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/httpclient"
)

// OrderCreator is the contract with the order-creation collaborator. It
// accepts a fully priced OrderDraft and either confirms the order or fails;
// this engine does not retry a failed submission on its own.
type OrderCreator interface {
	CreateOrder(ctx context.Context, draft *domain.OrderDraft) (orderID string, err error)
}

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// OrderServiceClient submits order drafts to the order service over HTTP.
type OrderServiceClient struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewOrderServiceClient creates a client for the order service.
func NewOrderServiceClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *OrderServiceClient {
	return &OrderServiceClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type createOrderResponse struct {
	Data struct {
		OrderID string `json:"order_id"`
	} `json:"data"`
}

// CreateOrder POSTs the draft to the order service and returns the confirmed
// order ID. Any transport error, open circuit, or non-2xx status is a
// submission failure; the caller decides what to do with the cart.
func (c *OrderServiceClient) CreateOrder(ctx context.Context, draft *domain.OrderDraft) (string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("marshal order draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", httpclient.ParseResponseError(resp, "order")
	}

	var orderResp createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("decode order response: %w", err)
	}

	c.logger.InfoContext(ctx, "order created",
		slog.String("draft_id", draft.ID),
		slog.String("order_id", orderResp.Data.OrderID),
	)

	return orderResp.Data.OrderID, nil
}
