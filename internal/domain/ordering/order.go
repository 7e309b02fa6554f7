package ordering

import (
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem represents a line item in a submitted order.
// Product data is snapshotted at submission time so that later catalog
// changes never alter what was ordered.
type OrderItem struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	ProductCode    string
	ProductName    string
	BoxQuantity    int64
	PieceQuantity  int64
	UnitPrice      decimal.Decimal
	Amount         decimal.Decimal // (BoxQuantity*PiecesPerBox + PieceQuantity) * UnitPrice
	PiecesPerBox   int64
	MinOrderUnit   int64
	SupplyQuantity int64
	DCQuantity     int64
	Cancelled      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line from a catalog product snapshot
func NewOrderItem(orderID uuid.UUID, product *catalog.Product, boxQuantity, pieceQuantity int64) (*OrderItem, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if boxQuantity < 0 || pieceQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:             uuid.New(),
		OrderID:        orderID,
		ProductCode:    product.Code,
		ProductName:    product.Name,
		BoxQuantity:    boxQuantity,
		PieceQuantity:  pieceQuantity,
		UnitPrice:      product.UnitPrice,
		Amount:         LineAmount(boxQuantity, pieceQuantity, product.PiecesPerBox, product.UnitPrice),
		PiecesPerBox:   product.PiecesPerBox,
		MinOrderUnit:   product.MinOrderUnit,
		SupplyQuantity: product.SupplyQuantity,
		DCQuantity:     product.DCQuantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// TotalPieces returns the line quantity expressed in pieces
func (i *OrderItem) TotalPieces() int64 {
	return TotalPieces(i.BoxQuantity, i.PieceQuantity, i.PiecesPerBox)
}

// GetAmountMoney returns the line amount as Money
func (i *OrderItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKRW(i.Amount)
}

// Order represents a submitted order aggregate root.
// Orders are append-only: once the PENDING row is durable it is never
// deleted, only its approval status advances.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientName     string          `gorm:"type:varchar(200);not null"`
	OrderDate      time.Time       `gorm:"not null"`
	DeliveryDate   time.Time       `gorm:"not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         ApprovalStatus  `gorm:"type:varchar(20);not null;default:'PENDING'"`
	FailureReason  *string         `gorm:"type:text"`
	Closed         bool            `gorm:"not null;default:false"`
	ClientDeadline *string         `gorm:"type:varchar(5)"` // HH:MM snapshot from the client at submission
	Items          []OrderItem     `gorm:"-"`
	ApprovedAt     *time.Time
	FailedAt       *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in PENDING status
func NewOrder(orderNumber string, ownerID, clientID uuid.UUID, clientName string, deliveryDate time.Time) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		OwnerID:           ownerID,
		ClientID:          clientID,
		ClientName:        clientName,
		OrderDate:         time.Now(),
		DeliveryDate:      deliveryDate,
		TotalAmount:       decimal.Zero,
		Status:            ApprovalStatusPending,
		Items:             make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderSubmittedEvent(order))

	return order, nil
}

// AddItem adds a line to the order and recalculates the total
func (o *Order) AddItem(product *catalog.Product, boxQuantity, pieceQuantity int64) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, product, boxQuantity, pieceQuantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// SetClientDeadline snapshots the client's daily order cutoff onto the order
func (o *Order) SetClientDeadline(deadline *string) {
	o.ClientDeadline = deadline
}

// Approve records fulfillment acceptance, transitioning PENDING to APPROVED
func (o *Order) Approve() error {
	if err := o.transitionTo(ApprovalStatusApproved); err != nil {
		return err
	}

	now := time.Now()
	o.ApprovedAt = &now
	o.FailureReason = nil

	o.AddDomainEvent(NewOrderApprovedEvent(o))

	return nil
}

// MarkSendFailed records a fulfillment rejection or transport failure.
// The reason is stored for the reconciliation workflow; the order row
// itself stays durable.
func (o *Order) MarkSendFailed(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Failure reason is required")
	}
	if err := o.transitionTo(ApprovalStatusSendFailed); err != nil {
		return err
	}

	now := time.Now()
	o.FailedAt = &now
	o.FailureReason = &reason

	o.AddDomainEvent(NewOrderSendFailedEvent(o, reason))

	return nil
}

// MarkResend flags a failed order for retransmission by the
// reconciliation workflow
func (o *Order) MarkResend() error {
	return o.transitionTo(ApprovalStatusResend)
}

// Close marks the order as closed for the sales cycle
func (o *Order) Close() {
	o.Closed = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// GetTotalAmountMoney returns the order total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyKRW(o.TotalAmount)
}

func (o *Order) transitionTo(target ApprovalStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// recalculateTotal recalculates the order total from non-cancelled lines
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.Cancelled {
			continue
		}
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
