package folio

// lot is one open purchase of a security: what was bought, when, and
// what it cost in total.
type lot struct {
	Date     Date
	Quantity Quantity
	Cost     Money
}

type lots []lot

// costOfSale returns the cost basis of selling a quantity against the
// open lots, oldest first. Selling part of a lot costs a proportional
// share of that lot's cost.
func (l lots) costOfSale(quantity Quantity) Money {
	var cost Money
	for _, open := range l {
		if open.Quantity.GreaterThan(quantity) {
			// Partial sale of this lot.
			return cost.Add(open.Cost.Mul(quantity).Div(open.Quantity))
		}
		// This whole lot is consumed, keep going.
		cost = cost.Add(open.Cost)
		quantity = quantity.Sub(open.Quantity)
	}
	return cost
}

// sell consumes a quantity from the open lots, oldest first, and
// returns the lots that remain open.
func (l lots) sell(quantity Quantity) lots {
	var remaining lots
	for _, open := range l {
		switch {
		case quantity.IsZero():
			remaining = append(remaining, open)
		case open.Quantity.GreaterThan(quantity):
			// Partial sale: shrink the lot and its cost proportionally.
			sold := open.Cost.Mul(quantity).Div(open.Quantity)
			remaining = append(remaining, lot{
				Date:     open.Date,
				Quantity: open.Quantity.Sub(quantity),
				Cost:     open.Cost.Sub(sold),
			})
			quantity = Q(0)
		default:
			// The whole lot is sold.
			quantity = quantity.Sub(open.Quantity)
		}
	}
	return remaining
}

// split rescales every open lot by num/den shares. Costs do not change.
func (l lots) split(num, den int64) lots {
	n, d := Q(num), Q(den)
	out := make(lots, len(l))
	for i, open := range l {
		out[i] = lot{Date: open.Date, Quantity: open.Quantity.Mul(n).Div(d), Cost: open.Cost}
	}
	return out
}
