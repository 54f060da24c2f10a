package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/histtrader/ledger"
)

// Action is what a strategy wants done after seeing a trade. BaseQuantity
// is the amount of base currency to exchange at the trade's price: positive
// buys quote, negative sells quote back for base, zero does nothing.
type Action struct {
	BaseQuantity float64
}

// Strategy reacts to one archived trade at a time. Balances are the
// simulator's state after the previous action was applied.
type Strategy interface {
	OnTrade(baseBalance, quoteBalance float64, t ledger.Trade) (Action, error)
}

// Factory builds a fresh strategy instance for one simulation window.
// Each backtest trial gets its own instance so no state leaks across runs.
type Factory func(baseBalance, quoteBalance float64) Strategy

// ByName resolves a strategy name from the CLI into a factory. fee is the
// exchange fee rate the strategy should assume when pricing its exits.
func ByName(name string, fee float64) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hold", "noop", "none":
		return NewHold, nil

	case "dip-exit", "dipexit":
		return NewDipExitFactory(fee), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: hold, dip-exit)", name)
	}
}
