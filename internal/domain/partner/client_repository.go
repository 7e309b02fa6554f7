package partner

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByCode finds a client by its code
	FindByCode(ctx context.Context, code string) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
