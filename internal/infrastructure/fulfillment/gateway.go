package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the fulfillment API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrNotConfigured indicates the gateway has no base URL configured
var ErrNotConfigured = errors.New("fulfillment: gateway not configured")

// HTTPGateway submits orders to the fulfillment system over HTTP.
// It implements ordering.SubmissionGateway: a reachable fulfillment
// system that declines an order yields an unaccepted result, not an
// error. Errors are reserved for transport-level failures.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPGateway creates a gateway from the fulfillment configuration
func NewHTTPGateway(cfg config.FulfillmentConfig, logger *zap.Logger) (*HTTPGateway, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("fulfillment: invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// submissionPayload is the wire format sent to the fulfillment system
type submissionPayload struct {
	OrderNumber    string                  `json:"order_number"`
	ClientID       string                  `json:"client_id"`
	ClientName     string                  `json:"client_name"`
	DeliveryDate   string                  `json:"delivery_date"`
	ClientDeadline *string                 `json:"client_deadline,omitempty"`
	TotalAmount    string                  `json:"total_amount"`
	Items          []submissionItemPayload `json:"items"`
}

type submissionItemPayload struct {
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name"`
	BoxQuantity   int64  `json:"box_quantity"`
	PieceQuantity int64  `json:"piece_quantity"`
	UnitPrice     string `json:"unit_price"`
	Amount        string `json:"amount"`
}

// submissionResponse is the wire format returned by the fulfillment system
type submissionResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// Submit sends the order to the fulfillment system
func (g *HTTPGateway) Submit(ctx context.Context, order *ordering.Order) (*ordering.SubmissionResult, error) {
	payload := submissionPayload{
		OrderNumber:    order.OrderNumber,
		ClientID:       order.ClientID.String(),
		ClientName:     order.ClientName,
		DeliveryDate:   order.DeliveryDate.Format("2006-01-02"),
		ClientDeadline: order.ClientDeadline,
		TotalAmount:    order.TotalAmount.String(),
		Items:          make([]submissionItemPayload, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, submissionItemPayload{
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			BoxQuantity:   item.BoxQuantity,
			PieceQuantity: item.PieceQuantity,
			UnitPrice:     item.UnitPrice.String(),
			Amount:        item.Amount.String(),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fulfillment: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("X-API-Key", g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: submit order %s: %w", order.OrderNumber, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("fulfillment: read response for order %s: %w", order.OrderNumber, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var result submissionResponse
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("fulfillment: decode response for order %s: %w", order.OrderNumber, err)
		}
		return &ordering.SubmissionResult{
			Accepted: result.Accepted,
			Reason:   result.Reason,
		}, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// The fulfillment system saw the order and declined it
		var result submissionResponse
		reason := fmt.Sprintf("fulfillment rejected order with status %d", resp.StatusCode)
		if err := json.Unmarshal(respBody, &result); err == nil && result.Reason != "" {
			reason = result.Reason
		}
		g.logger.Warn("fulfillment declined order",
			zap.String("order_number", order.OrderNumber),
			zap.Int("status", resp.StatusCode),
			zap.String("reason", reason),
		)
		return &ordering.SubmissionResult{Accepted: false, Reason: reason}, nil

	default:
		return nil, fmt.Errorf("fulfillment: unexpected status %d for order %s", resp.StatusCode, order.OrderNumber)
	}
}

// Ensure HTTPGateway implements SubmissionGateway
var _ ordering.SubmissionGateway = (*HTTPGateway)(nil)
