package ordering

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftItem represents a line item in an order draft.
// Like order lines, it carries a product snapshot so the draft renders
// consistently even while catalog data moves underneath it.
type DraftItem struct {
	ID             uuid.UUID
	DraftID        uuid.UUID
	ProductCode    string
	ProductName    string
	BoxQuantity    int64
	PieceQuantity  int64
	UnitPrice      decimal.Decimal
	Amount         decimal.Decimal
	PiecesPerBox   int64
	MinOrderUnit   int64
	SupplyQuantity int64
	DCQuantity     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DraftItem) TableName() string {
	return "order_draft_items"
}

// NewDraftItem creates a draft line from a catalog product snapshot
func NewDraftItem(draftID uuid.UUID, product *catalog.Product, boxQuantity, pieceQuantity int64) (*DraftItem, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if boxQuantity < 0 || pieceQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}

	now := time.Now()
	return &DraftItem{
		ID:             uuid.New(),
		DraftID:        draftID,
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
func (i *DraftItem) TotalPieces() int64 {
	return TotalPieces(i.BoxQuantity, i.PieceQuantity, i.PiecesPerBox)
}

// OrderDraft is the single working order a sales representative keeps
// per device session. There is at most one draft per owner; saving a
// draft replaces the previous one wholesale rather than merging lines.
type OrderDraft struct {
	shared.BaseAggregateRoot
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryDate time.Time       `gorm:"not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Items        []DraftItem     `gorm:"-"`
}

// TableName returns the table name for GORM
func (OrderDraft) TableName() string {
	return "order_drafts"
}

// NewOrderDraft creates a new draft for an owner
func NewOrderDraft(ownerID, clientID uuid.UUID, deliveryDate time.Time) (*OrderDraft, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	return &OrderDraft{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		ClientID:          clientID,
		DeliveryDate:      deliveryDate,
		TotalAmount:       decimal.Zero,
		Items:             make([]DraftItem, 0),
	}, nil
}

// AddItem adds a line to the draft and recalculates the total
func (d *OrderDraft) AddItem(product *catalog.Product, boxQuantity, pieceQuantity int64) (*DraftItem, error) {
	item, err := NewDraftItem(d.ID, product, boxQuantity, pieceQuantity)
	if err != nil {
		return nil, err
	}

	d.Items = append(d.Items, *item)
	d.recalculateTotal()
	d.UpdatedAt = time.Now()

	return item, nil
}

func (d *OrderDraft) recalculateTotal() {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Amount)
	}
	d.TotalAmount = total
}
