package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/buildmart/internal/models"
)

// Subtotal sums price*quantity over items in decimal and rounds half away from zero to cents.
func Subtotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}
