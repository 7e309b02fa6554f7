package ordering

import (
	"github.com/shopspring/decimal"
)

// TotalPieces converts a box/piece quantity pair to a total piece count
// using the product's packaging factor.
func TotalPieces(boxQuantity, pieceQuantity, piecesPerBox int64) int64 {
	return boxQuantity*piecesPerBox + pieceQuantity
}

// LineAmount prices a single line: total pieces times the per-piece price.
// All arithmetic stays in decimal space; no rounding is applied anywhere
// in the pricing path.
func LineAmount(boxQuantity, pieceQuantity, piecesPerBox int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(TotalPieces(boxQuantity, pieceQuantity, piecesPerBox)))
}
