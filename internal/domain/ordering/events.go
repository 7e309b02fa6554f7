package ordering

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderSubmitted  = "OrderSubmitted"
	EventTypeOrderApproved   = "OrderApproved"
	EventTypeOrderSendFailed = "OrderSendFailed"
)

// OrderSubmittedEvent is raised when an order enters PENDING status
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderSubmittedEvent creates a new OrderSubmittedEvent
func NewOrderSubmittedEvent(order *Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmitted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OwnerID:         order.OwnerID,
		ClientID:        order.ClientID,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *OrderSubmittedEvent) EventType() string {
	return EventTypeOrderSubmitted
}

// OrderApprovedEvent is raised when fulfillment accepts an order
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

// NewOrderApprovedEvent creates a new OrderApprovedEvent
func NewOrderApprovedEvent(order *Order) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderApproved, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OwnerID:         order.OwnerID,
	}
}

// EventType returns the event type name
func (e *OrderApprovedEvent) EventType() string {
	return EventTypeOrderApproved
}

// OrderSendFailedEvent is raised when the fulfillment hand-off fails
type OrderSendFailedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Reason      string    `json:"reason"`
}

// NewOrderSendFailedEvent creates a new OrderSendFailedEvent
func NewOrderSendFailedEvent(order *Order, reason string) *OrderSendFailedEvent {
	return &OrderSendFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSendFailed, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OwnerID:         order.OwnerID,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *OrderSendFailedEvent) EventType() string {
	return EventTypeOrderSendFailed
}
