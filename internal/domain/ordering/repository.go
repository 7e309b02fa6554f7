package ordering

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DraftRepository defines the interface for order draft persistence.
// The owner is the aggregate key: each owner has at most one draft.
type DraftRepository interface {
	// FindByOwner finds the owner's draft with its items
	// Returns shared.ErrNotFound if the owner has no draft.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*OrderDraft, error)

	// Replace saves the draft, removing any previous draft (and its
	// items) the owner had. Replacement is atomic.
	Replace(ctx context.Context, draft *OrderDraft) error

	// DeleteByOwner removes the owner's draft and its items
	// Returns shared.ErrNotFound if the owner has no draft.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its business number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByOwner lists the owner's orders matching the filter
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByOwner counts the owner's orders matching the filter
	CountByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// Create durably writes a new order and its items in one transaction
	Create(ctx context.Context, order *Order) error

	// UpdateStatus persists an approval status transition together with
	// the failure reason and transition timestamps
	UpdateStatus(ctx context.Context, order *Order) error

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// GenerateOrderNumber produces the next unique order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
