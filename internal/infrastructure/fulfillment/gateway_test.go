package fulfillment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gatewayTestOrder(t *testing.T) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder("ORD00000042", uuid.New(), uuid.New(), "Mapo Mart", time.Now().AddDate(0, 0, 2))
	require.NoError(t, err)

	product, err := catalog.NewProduct("SKU-001", "Barley Tea 500ml", decimal.NewFromInt(500), 10)
	require.NoError(t, err)
	product.SupplyQuantity = 1000
	product.DCQuantity = 1000

	_, err = order.AddItem(product, 2, 3)
	require.NoError(t, err)
	return order
}

func newTestGateway(t *testing.T, serverURL string) *HTTPGateway {
	t.Helper()
	gateway, err := NewHTTPGateway(config.FulfillmentConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return gateway
}

func TestHTTPGateway_AcceptedOrder(t *testing.T) {
	var received submissionPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(submissionResponse{Accepted: true})
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)
	result, err := gateway.Submit(context.Background(), gatewayTestOrder(t))

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "ORD00000042", received.OrderNumber)
	require.Len(t, received.Items, 1)
	assert.Equal(t, "SKU-001", received.Items[0].ProductCode)
	assert.Equal(t, "11500", received.TotalAmount)
}

func TestHTTPGateway_RejectedInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(submissionResponse{Accepted: false, Reason: "client credit hold"})
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)
	result, err := gateway.Submit(context.Background(), gatewayTestOrder(t))

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, "client credit hold", result.Reason)
}

func TestHTTPGateway_RejectedWithClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(submissionResponse{Reason: "delivery window closed"})
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)
	result, err := gateway.Submit(context.Background(), gatewayTestOrder(t))

	require.NoError(t, err, "a decline is a result, not a transport failure")
	assert.False(t, result.Accepted)
	assert.Equal(t, "delivery window closed", result.Reason)
}

func TestHTTPGateway_ServerErrorIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := newTestGateway(t, server.URL)
	result, err := gateway.Submit(context.Background(), gatewayTestOrder(t))

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestHTTPGateway_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately closed, connections will be refused

	gateway := newTestGateway(t, server.URL)
	result, err := gateway.Submit(context.Background(), gatewayTestOrder(t))

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestNewHTTPGateway_RequiresBaseURL(t *testing.T) {
	_, err := NewHTTPGateway(config.FulfillmentConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
