package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// invertedPlaces is the number of decimal places kept for 1/price. Eight
// matches the precision the exchange uses for its own price strings.
const invertedPlaces = 8

// Invert flips an archive to the reciprocal market: price becomes 1/price
// and the base/quote quantities swap. Ids and timestamps are untouched, so
// the result is a valid archive for the inverted symbol.
//
// Division is done in decimal, not float64, so the rewritten price strings
// do not pick up binary floating point artifacts.
func Invert(trades []Trade) ([]Trade, error) {
	one := decimal.NewFromInt(1)

	out := make([]Trade, len(trades))
	for i, t := range trades {
		p, err := decimal.NewFromString(t.Price)
		if err != nil {
			return nil, fmt.Errorf("trade %d: price %q: %w", t.ID, t.Price, ErrCorruptRecord)
		}
		if p.IsZero() {
			return nil, fmt.Errorf("trade %d: cannot invert zero price: %w", t.ID, ErrCorruptRecord)
		}

		inv := t
		inv.Price = one.DivRound(p, invertedPlaces).String()
		inv.Qty, inv.QuoteQty = t.QuoteQty, t.Qty
		out[i] = inv
	}
	return out, nil
}
