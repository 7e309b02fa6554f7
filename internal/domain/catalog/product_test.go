package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid data", func(t *testing.T) {
		p, err := NewProduct("sku-001", "Vanilla Wafers 40g", decimal.NewFromInt(500), 10)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", p.Code)
		assert.Equal(t, "Vanilla Wafers 40g", p.Name)
		assert.True(t, p.UnitPrice.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(10), p.PiecesPerBox)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProduct("  ", "Name", decimal.NewFromInt(100), 1)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", decimal.NewFromInt(100), 1)
		assert.Error(t, err)
	})

	t.Run("rejects name over 200 characters", func(t *testing.T) {
		_, err := NewProduct("SKU-001", strings.Repeat("x", 201), decimal.NewFromInt(100), 1)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(-1), 1)
		assert.Error(t, err)
	})

	t.Run("rejects zero pieces per box", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(100), 0)
		assert.Error(t, err)
	})
}

func TestProductUpdatePackaging(t *testing.T) {
	p, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(100), 10)
	require.NoError(t, err)

	t.Run("updates packaging constraints", func(t *testing.T) {
		require.NoError(t, p.UpdatePackaging(24, 12))
		assert.Equal(t, int64(24), p.PiecesPerBox)
		assert.Equal(t, int64(12), p.MinOrderUnit)
	})

	t.Run("rejects invalid pieces per box", func(t *testing.T) {
		assert.Error(t, p.UpdatePackaging(0, 10))
	})

	t.Run("rejects negative minimum order unit", func(t *testing.T) {
		assert.Error(t, p.UpdatePackaging(10, -1))
	})
}

func TestProductUpdateAvailability(t *testing.T) {
	p, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(100), 10)
	require.NoError(t, err)

	require.NoError(t, p.UpdateAvailability(1000, 250))
	assert.Equal(t, int64(1000), p.SupplyQuantity)
	assert.Equal(t, int64(250), p.DCQuantity)

	assert.Error(t, p.UpdateAvailability(-1, 0))
}

func TestProductStatusTransitions(t *testing.T) {
	p, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	assert.True(t, p.IsActive())

	p.Deactivate()
	assert.Equal(t, ProductStatusInactive, p.Status)
	assert.False(t, p.IsActive())

	p.Activate()
	assert.True(t, p.IsActive())

	p.Discontinue()
	assert.Equal(t, ProductStatusDiscontinued, p.Status)
	assert.False(t, p.IsActive())
}

func TestProductVersionIncrements(t *testing.T) {
	p, err := NewProduct("SKU-001", "Name", decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	initial := p.GetVersion()

	require.NoError(t, p.UpdatePrice(decimal.NewFromInt(200)))
	assert.Equal(t, initial+1, p.GetVersion())
}
