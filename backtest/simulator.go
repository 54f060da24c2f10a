package backtest

import (
	"fmt"
	"math/rand"

	"github.com/rustyeddy/histtrader/journal"
	"github.com/rustyeddy/histtrader/ledger"
	"github.com/rustyeddy/histtrader/strategies"
)

// Simulator replays random windows of a trade archive against a strategy
// and tracks base/quote balances with exchange fees applied.
//
// The simulator is a pure consumer of the Book's read API: it never
// mutates or extends the archive.
type Simulator struct {
	Book *ledger.Book
	Fee  float64
	Rand *rand.Rand

	// InitialBase/InitialQuote seed each trial's balances.
	InitialBase  float64
	InitialQuote float64
}

// NewSimulator builds a simulator with the conventional 1.0 base / 0.0
// quote starting balances.
func NewSimulator(book *ledger.Book, fee float64, rng *rand.Rand) *Simulator {
	return &Simulator{
		Book:        book,
		Fee:         fee,
		Rand:        rng,
		InitialBase: 1.0,
	}
}

// TrialResult is the outcome of one random-window replay. Start and Finish
// are logical (newest-first) trade indexes; the window [Start, Finish) was
// replayed oldest to newest.
type TrialResult struct {
	Start  int
	Finish int
	Trades int
	Base   float64
	Quote  float64
}

// Win reports whether the trial ended with more base currency than it
// started with.
func (r TrialResult) Win(initialBase float64) bool {
	return r.Base > initialBase
}

// Summary aggregates a batch of trials.
type Summary struct {
	Trials int
	Wins   int
}

// Run replays one uniformly random window. Logical indexes grow toward
// older trades, so the window is walked downward to feed the strategy in
// chronological order.
func (s *Simulator) Run(factory strategies.Factory, verbose bool) (TrialResult, error) {
	if s.Book == nil {
		return TrialResult{}, fmt.Errorf("backtest: Book is required")
	}
	if factory == nil {
		return TrialResult{}, fmt.Errorf("backtest: strategy factory is required")
	}

	n := s.Book.Len()
	start := s.Rand.Intn(n)
	finish := start + s.Rand.Intn(n-start)

	if verbose {
		fmt.Printf("Generated window: %d-%d\n", start, finish)
	}

	base := s.InitialBase
	quote := s.InitialQuote
	strat := factory(base, quote)

	trades := 0
	for i := finish - 1; i >= start; i-- {
		trade := s.Book.At(i)

		action, err := strat.OnTrade(base, quote, trade)
		if err != nil {
			return TrialResult{}, err
		}

		base, quote, err = s.apply(base, quote, action, trade, verbose)
		if err != nil {
			return TrialResult{}, err
		}
		trades++
	}

	if verbose {
		fmt.Printf("Final base balance: %g, quote balance: %g\n", base, quote)
	}

	return TrialResult{Start: start, Finish: finish, Trades: trades, Base: base, Quote: quote}, nil
}

// apply executes one action at the trade's price. Buying quote pays the
// fee on the quote received; selling quote back pays it on the quote spent.
func (s *Simulator) apply(base, quote float64, a strategies.Action, t ledger.Trade, verbose bool) (float64, float64, error) {
	if a.BaseQuantity == 0 {
		if verbose {
			price, err := t.PriceFloat()
			if err != nil {
				return 0, 0, err
			}
			fmt.Printf("Current price: %g\n", price)
		}
		return base, quote, nil
	}

	price, err := t.PriceFloat()
	if err != nil {
		return 0, 0, err
	}

	base -= a.BaseQuantity

	var quoteDiff float64
	if a.BaseQuantity >= 0 {
		quoteDiff = a.BaseQuantity * price * (1 - s.Fee)
	} else {
		quoteDiff = a.BaseQuantity * price * (1 + s.Fee)
	}
	quote += quoteDiff

	if verbose {
		fmt.Printf("Current price: %g, exchanged %g base for %g quote; base balance: %g, quote balance: %g\n",
			price, a.BaseQuantity, quoteDiff, base, quote)
	}

	if base < 0 {
		return 0, 0, fmt.Errorf("backtest: base balance went negative: %g", base)
	}
	if quote < 0 {
		return 0, 0, fmt.Errorf("backtest: quote balance went negative: %g", quote)
	}
	return base, quote, nil
}

// RunTrials replays n independent windows. If j is not nil, every trial and
// the aggregate run are journaled under runID. verbose is passed through to
// every trial's Run.
func (s *Simulator) RunTrials(n int, factory strategies.Factory, j journal.Journal, runID string, verbose bool) (Summary, error) {
	sum := Summary{}

	for i := 0; i < n; i++ {
		res, err := s.Run(factory, verbose)
		if err != nil {
			return sum, err
		}

		sum.Trials++
		win := res.Win(s.InitialBase)
		if win {
			sum.Wins++
		}

		if j != nil {
			err := j.RecordTrial(journal.TrialRecord{
				RunID:      runID,
				Trial:      i,
				StartIdx:   res.Start,
				FinishIdx:  res.Finish,
				BaseFinal:  res.Base,
				QuoteFinal: res.Quote,
				Win:        win,
			})
			if err != nil {
				return sum, fmt.Errorf("backtest: journal trial %d: %w", i, err)
			}
		}
	}

	return sum, nil
}
