package catalog

import (
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a sellable SKU in the catalog
// It is the aggregate root for product-related operations.
// Packaging data (pieces per box, minimum order unit) and availability
// quantities (supply, distribution center) drive order line validation.
type Product struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Price per piece
	PiecesPerBox   int64           `gorm:"not null;default:1"`
	MinOrderUnit   int64           `gorm:"not null;default:0"` // Minimum total pieces per order line, 0 = no minimum
	SupplyQuantity int64           `gorm:"not null;default:0"` // Pieces available from the supplier
	DCQuantity     int64           `gorm:"not null;default:0"` // Pieces available at the distribution center
	Status         ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder      int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, unitPrice decimal.Decimal, piecesPerBox int64) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if piecesPerBox < 1 {
		return nil, shared.NewDomainError("INVALID_PACKAGING", "Pieces per box must be at least 1")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		UnitPrice:         unitPrice,
		PiecesPerBox:      piecesPerBox,
		Status:            ProductStatusActive,
	}

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// UpdatePrice updates the per-piece price
func (p *Product) UpdatePrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdatePackaging updates packaging and ordering constraints
func (p *Product) UpdatePackaging(piecesPerBox, minOrderUnit int64) error {
	if piecesPerBox < 1 {
		return shared.NewDomainError("INVALID_PACKAGING", "Pieces per box must be at least 1")
	}
	if minOrderUnit < 0 {
		return shared.NewDomainError("INVALID_PACKAGING", "Minimum order unit cannot be negative")
	}
	p.PiecesPerBox = piecesPerBox
	p.MinOrderUnit = minOrderUnit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// UpdateAvailability replaces the supply and distribution-center quantities
// These are refreshed from upstream inventory feeds, not decremented here.
func (p *Product) UpdateAvailability(supplyQuantity, dcQuantity int64) error {
	if supplyQuantity < 0 || dcQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Availability quantities cannot be negative")
	}
	p.SupplyQuantity = supplyQuantity
	p.DCQuantity = dcQuantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate sets the product status to active
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate sets the product status to inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Discontinue marks the product as discontinued
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product can be ordered
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
