package ordering

import (
	"fmt"

	"github.com/fieldsales/backend/internal/domain/shared"
)

// Domain errors raised by the ordering application services
var (
	ErrClientNotFound      = shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
	ErrDraftNotFound       = shared.NewDomainError("DRAFT_NOT_FOUND", "No draft order exists for this user")
	ErrInvalidDeliveryDate = shared.NewDomainError("INVALID_DELIVERY_DATE", "Delivery date must be later than today")
	ErrOwnerNotFound       = shared.NewDomainError("OWNER_NOT_FOUND", "Order owner does not exist")
)

// NewProductNotFoundError names the first requested product code that has
// no catalog entry
func NewProductNotFoundError(code string) *shared.DomainError {
	return shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf("Product not found: %s", code))
}
