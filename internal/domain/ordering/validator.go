package ordering

import (
	"fmt"

	"github.com/fieldsales/backend/internal/domain/catalog"
)

// Violation messages for line item validation
const (
	ViolationQuantityRequired  = "quantity required"
	ViolationBelowMinOrderUnit = "below minimum order unit"
	ViolationExceedsSupply     = "exceeds supply quantity"
	ViolationExceedsDCStock    = "exceeds distribution-center quantity"
)

// ItemInput is one requested order line, addressed by product code
type ItemInput struct {
	ProductCode   string
	BoxQuantity   int64
	PieceQuantity int64
}

// ItemViolation describes a single invalid line with every rule it broke
type ItemViolation struct {
	ProductCode   string   `json:"product_code"`
	ProductName   string   `json:"product_name"`
	BoxQuantity   int64    `json:"box_quantity"`
	PieceQuantity int64    `json:"piece_quantity"`
	Errors        []string `json:"errors"`
}

// ValidationResult is the outcome of validating a set of order lines
type ValidationResult struct {
	Valid        bool            `json:"valid"`
	InvalidItems []ItemViolation `json:"invalid_items"`
}

// ValidateItems checks every requested line against current catalog
// packaging and availability data. The rules are cumulative: each line
// is evaluated against all of them and every broken rule is reported,
// so the representative can fix an entire order in one pass.
//
// Every product code in items must be present in products; the caller
// resolves the catalog lookup (and its not-found handling) beforehand.
func ValidateItems(items []ItemInput, products map[string]*catalog.Product) ValidationResult {
	result := ValidationResult{Valid: true, InvalidItems: make([]ItemViolation, 0)}

	for _, item := range items {
		product := products[item.ProductCode]
		if product == nil {
			continue
		}

		pieces := TotalPieces(item.BoxQuantity, item.PieceQuantity, product.PiecesPerBox)

		// A zero minimum or a zero availability bound means the product
		// is unconstrained on that rule, and the minimum-order check only
		// applies to lines that actually carry a quantity.
		var errs []string
		if pieces <= 0 {
			errs = append(errs, ViolationQuantityRequired)
		}
		if pieces > 0 && product.MinOrderUnit > 0 && pieces < product.MinOrderUnit {
			errs = append(errs, ViolationBelowMinOrderUnit)
		}
		if product.SupplyQuantity > 0 && pieces > product.SupplyQuantity {
			errs = append(errs, ViolationExceedsSupply)
		}
		if product.DCQuantity > 0 && pieces > product.DCQuantity {
			errs = append(errs, ViolationExceedsDCStock)
		}

		if len(errs) > 0 {
			result.Valid = false
			result.InvalidItems = append(result.InvalidItems, ItemViolation{
				ProductCode:   product.Code,
				ProductName:   product.Name,
				BoxQuantity:   item.BoxQuantity,
				PieceQuantity: item.PieceQuantity,
				Errors:        errs,
			})
		}
	}

	return result
}

// ValidationError carries a failed validation result across the service
// boundary so handlers can render the full invalid-item list
type ValidationError struct {
	Result ValidationResult
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("order validation failed: %d invalid items", len(e.Result.InvalidItems))
}
