package ledger

import (
	"fmt"
	"strconv"
)

// Trade is one executed trade as reported by the exchange's historical
// trades endpoint. Price and quantity fields are kept as the exact decimal
// strings from the wire so that save/load round-trips are byte identical;
// convert with PriceFloat only when arithmetic is actually needed.
type Trade struct {
	ID           int64  `json:"id"`
	Price        string `json:"price"`
	Qty          string `json:"qty"`
	QuoteQty     string `json:"quoteQty"`
	Time         int64  `json:"time"` // unix epoch milliseconds
	IsBuyerMaker bool   `json:"isBuyerMaker"`
	IsBestMatch  bool   `json:"isBestMatch"`
}

// PriceFloat parses the stored decimal price string. The conversion is
// computed on demand and never cached; a string that fails to parse means
// the archive is corrupt, not that the caller did anything wrong.
func (t Trade) PriceFloat() (float64, error) {
	f, err := strconv.ParseFloat(t.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("trade %d: price %q: %w", t.ID, t.Price, ErrCorruptRecord)
	}
	return f, nil
}
