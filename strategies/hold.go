package strategies

import "github.com/rustyeddy/histtrader/ledger"

// Hold never trades. Useful as a baseline: any strategy that cannot beat
// it is losing money to fees.
type Hold struct{}

func NewHold(baseBalance, quoteBalance float64) Strategy {
	_ = baseBalance
	_ = quoteBalance
	return Hold{}
}

func (Hold) OnTrade(baseBalance, quoteBalance float64, t ledger.Trade) (Action, error) {
	return Action{}, nil
}
