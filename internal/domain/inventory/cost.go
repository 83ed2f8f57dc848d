package inventory

import "github.com/shopspring/decimal"

// LineCost cantidad recibida de un lote y su costo unitario (nil = sin costo informado).
type LineCost struct {
	Quantity int
	UnitCost *decimal.Decimal
}

// AverageCost costo promedio ponderado al sumar una línea a lo acumulado.
// Nuevo = ((CantAcum * CostoAcum) + (Cant * Costo)) / (CantAcum + Cant)
func AverageCost(accQty, accCost, qty, cost decimal.Decimal) decimal.Decimal {
	sum := accQty.Add(qty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return accQty.Mul(accCost).Add(qty.Mul(cost)).Div(sum)
}

// EntryCost valor total y costo unitario promedio de una entrada.
// Las líneas sin costo no participan; priced es false si ninguna lo tiene.
func EntryCost(lines []LineCost) (total, average decimal.Decimal, priced bool) {
	accQty := decimal.Zero
	average = decimal.Zero
	total = decimal.Zero
	for _, l := range lines {
		if l.UnitCost == nil || l.Quantity <= 0 {
			continue
		}
		q := decimal.NewFromInt(int64(l.Quantity))
		average = AverageCost(accQty, average, q, *l.UnitCost)
		accQty = accQty.Add(q)
		total = total.Add(q.Mul(*l.UnitCost))
		priced = true
	}
	return total.Round(2), average.Round(4), priced
}
