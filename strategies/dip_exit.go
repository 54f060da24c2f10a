package strategies

import "github.com/rustyeddy/histtrader/ledger"

// DipExit goes all-in on the first trade it sees, then waits for the price
// to drop far enough below the fee-adjusted entry that selling back still
// clears the round-trip fees, and exits once. After the exit it holds.
//
// The entry is recorded at price*(1+fee) and the exit triggers when
// price*(1+fee) < entry*(1-fee), so both legs of the fee are priced in
// before a sale is considered profitable enough.
type DipExit struct {
	fee float64

	baseBalance  float64
	quoteBalance float64
	entryPrice   float64 // 0 until the opening buy
	entered      bool
	exited       bool
}

// NewDipExitFactory binds the fee rate; the returned Factory is what each
// trial instantiates.
func NewDipExitFactory(fee float64) Factory {
	return func(baseBalance, quoteBalance float64) Strategy {
		return &DipExit{
			fee:          fee,
			baseBalance:  baseBalance,
			quoteBalance: quoteBalance,
		}
	}
}

func (s *DipExit) OnTrade(baseBalance, quoteBalance float64, t ledger.Trade) (Action, error) {
	s.baseBalance = baseBalance
	s.quoteBalance = quoteBalance

	if s.exited {
		return Action{}, nil
	}

	price, err := t.PriceFloat()
	if err != nil {
		return Action{}, err
	}

	if !s.entered {
		s.entered = true
		s.entryPrice = price * (1 + s.fee)
		return Action{BaseQuantity: 1.0}, nil
	}

	if price*(1+s.fee) < s.entryPrice*(1-s.fee) {
		s.exited = true
		// The 0.999999 haircut keeps float rounding from asking the
		// simulator for a hair more quote than the balance holds.
		return Action{BaseQuantity: -s.quoteBalance / price * 0.999999 * (1 - s.fee)}, nil
	}
	return Action{}, nil
}
