package journal

import "time"

// RunRecord summarizes one backtest invocation: the archive and strategy
// it ran against and the aggregate outcome over all trials.
type RunRecord struct {
	RunID    string
	Strategy string
	Symbol   string
	Archive  string
	Fee      float64
	Trials   int
	Wins     int
	Created  time.Time
}

// TrialRecord is one random-window replay inside a run. Indexes are the
// logical (newest-first) trade indexes the window covered.
type TrialRecord struct {
	RunID      string
	Trial      int
	StartIdx   int
	FinishIdx  int
	BaseFinal  float64
	QuoteFinal float64
	Win        bool
}

// Journal persists backtest outcomes for later comparison across runs.
type Journal interface {
	RecordRun(RunRecord) error
	RecordTrial(TrialRecord) error
	Close() error
}
