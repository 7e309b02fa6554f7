package ordering

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Requests ====================

// ItemInput represents one requested order line
type ItemInput struct {
	ProductCode   string `json:"product_code" binding:"required,min=1,max=50"`
	BoxQuantity   int64  `json:"box_quantity" binding:"min=0"`
	PieceQuantity int64  `json:"piece_quantity" binding:"min=0"`
}

// SaveDraftRequest represents a request to save (replace) the owner's draft
type SaveDraftRequest struct {
	ClientID     uuid.UUID   `json:"client_id" binding:"required"`
	DeliveryDate string      `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Items        []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// ValidateOrderRequest represents a request to validate an order
// without submitting. It carries the same shape as a submission so the
// pre-check exercises the same rules minus persistence.
type ValidateOrderRequest struct {
	ClientID     uuid.UUID   `json:"client_id" binding:"required"`
	DeliveryDate string      `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Items        []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// SubmitOrderRequest represents a request to submit an order
type SubmitOrderRequest struct {
	ClientID     uuid.UUID   `json:"client_id" binding:"required"`
	DeliveryDate string      `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Items        []ItemInput `json:"items" binding:"required,min=1,dive"`
}

// ListOrdersFilter represents order history query parameters
type ListOrdersFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ==================== Responses ====================

// ItemResponse represents a draft or order line
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	BoxQuantity   int64           `json:"box_quantity"`
	PieceQuantity int64           `json:"piece_quantity"`
	TotalPieces   int64           `json:"total_pieces"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Amount        decimal.Decimal `json:"amount"`
	PiecesPerBox  int64           `json:"pieces_per_box"`
	Cancelled     bool            `json:"cancelled,omitempty"`
}

// DraftResponse represents the owner's draft order
type DraftResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	DeliveryDate string          `json:"delivery_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []ItemResponse  `json:"items"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ValidationResultResponse represents the outcome of line validation
type ValidationResultResponse struct {
	Valid        bool                     `json:"valid"`
	InvalidItems []ordering.ItemViolation `json:"invalid_items"`
}

// SubmitOrderResponse represents the outcome of a submission.
// A SEND_FAILED status is a normal response, not an error: the order is
// durable and carries the failure reason.
type SubmitOrderResponse struct {
	OrderID       uuid.UUID               `json:"order_id"`
	OrderNumber   string                  `json:"order_number"`
	Status        ordering.ApprovalStatus `json:"status"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	FailureReason *string                 `json:"failure_reason,omitempty"`
	SubmittedAt   time.Time               `json:"submitted_at"`
}

// OrderResponse represents a submitted order with its lines
type OrderResponse struct {
	ID             uuid.UUID               `json:"id"`
	OrderNumber    string                  `json:"order_number"`
	ClientID       uuid.UUID               `json:"client_id"`
	ClientName     string                  `json:"client_name"`
	OrderDate      time.Time               `json:"order_date"`
	DeliveryDate   string                  `json:"delivery_date"`
	TotalAmount    decimal.Decimal         `json:"total_amount"`
	Status         ordering.ApprovalStatus `json:"status"`
	FailureReason  *string                 `json:"failure_reason,omitempty"`
	Closed         bool                    `json:"closed"`
	ClientDeadline *string                 `json:"client_deadline,omitempty"`
	Items          []ItemResponse          `json:"items"`
	CreatedAt      time.Time               `json:"created_at"`
}

// OrderListItemResponse represents one row of the order history
type OrderListItemResponse struct {
	ID            uuid.UUID               `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	ClientID      uuid.UUID               `json:"client_id"`
	ClientName    string                  `json:"client_name"`
	DeliveryDate  string                  `json:"delivery_date"`
	TotalAmount   decimal.Decimal         `json:"total_amount"`
	Status        ordering.ApprovalStatus `json:"status"`
	FailureReason *string                 `json:"failure_reason,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ==================== Mapping ====================

const dateLayout = "2006-01-02"

// ToDraftResponse converts an OrderDraft to its response DTO
func ToDraftResponse(draft *ordering.OrderDraft) DraftResponse {
	items := make([]ItemResponse, len(draft.Items))
	for i, item := range draft.Items {
		items[i] = ItemResponse{
			ID:            item.ID,
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			BoxQuantity:   item.BoxQuantity,
			PieceQuantity: item.PieceQuantity,
			TotalPieces:   item.TotalPieces(),
			UnitPrice:     item.UnitPrice,
			Amount:        item.Amount,
			PiecesPerBox:  item.PiecesPerBox,
		}
	}
	return DraftResponse{
		ID:           draft.ID,
		ClientID:     draft.ClientID,
		DeliveryDate: draft.DeliveryDate.Format(dateLayout),
		TotalAmount:  draft.TotalAmount,
		Items:        items,
		UpdatedAt:    draft.UpdatedAt,
	}
}

// ToOrderResponse converts an Order to its response DTO
func ToOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]ItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = ItemResponse{
			ID:            item.ID,
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			BoxQuantity:   item.BoxQuantity,
			PieceQuantity: item.PieceQuantity,
			TotalPieces:   item.TotalPieces(),
			UnitPrice:     item.UnitPrice,
			Amount:        item.Amount,
			PiecesPerBox:  item.PiecesPerBox,
			Cancelled:     item.Cancelled,
		}
	}
	return OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		ClientID:       order.ClientID,
		ClientName:     order.ClientName,
		OrderDate:      order.OrderDate,
		DeliveryDate:   order.DeliveryDate.Format(dateLayout),
		TotalAmount:    order.TotalAmount,
		Status:         order.Status,
		FailureReason:  order.FailureReason,
		Closed:         order.Closed,
		ClientDeadline: order.ClientDeadline,
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}

// ToOrderListItemResponse converts an Order to a history row DTO
func ToOrderListItemResponse(order *ordering.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		ClientID:      order.ClientID,
		ClientName:    order.ClientName,
		DeliveryDate:  order.DeliveryDate.Format(dateLayout),
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		FailureReason: order.FailureReason,
		CreatedAt:     order.CreatedAt,
	}
}

// ToValidationResultResponse converts a domain validation result
func ToValidationResultResponse(result ordering.ValidationResult) ValidationResultResponse {
	return ValidationResultResponse{
		Valid:        result.Valid,
		InvalidItems: result.InvalidItems,
	}
}

func toDomainItemInputs(items []ItemInput) []ordering.ItemInput {
	inputs := make([]ordering.ItemInput, len(items))
	for i, item := range items {
		inputs[i] = ordering.ItemInput{
			ProductCode:   item.ProductCode,
			BoxQuantity:   item.BoxQuantity,
			PieceQuantity: item.PieceQuantity,
		}
	}
	return inputs
}
