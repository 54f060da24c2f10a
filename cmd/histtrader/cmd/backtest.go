package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rustyeddy/histtrader/backtest"
	"github.com/rustyeddy/histtrader/id"
	"github.com/rustyeddy/histtrader/journal"
	"github.com/rustyeddy/histtrader/ledger"
	"github.com/rustyeddy/histtrader/strategies"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay random archive windows against a trading strategy",
	Long: `Backtest opens a trade archive read-only and replays random windows of
it against a strategy, counting how many trials end with more base
currency than they started with.

Supported strategies:
  - hold: never trades (baseline)
  - dip-exit: all-in entry, one fee-aware exit on a price dip

Example:
  histtrader backtest -i historical_trades.json -n 10000 --fee 0.00001 -s dip-exit`,
	RunE: runBacktestCmd,
}

var (
	btInput    string
	btTrials   int
	btFee      float64
	btStrategy string
	btDBPath   string
	btVerbose  bool
	btSeed     int64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btInput, "input", "i", "", "path to the archive file (required)")
	backtestCmd.Flags().IntVarP(&btTrials, "trials", "n", 0, "number of random-window trials (default from config)")
	backtestCmd.Flags().Float64Var(&btFee, "fee", -1, "exchange fee rate, e.g. 0.001 (default from config)")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "", "strategy name (default from config)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "", "SQLite journal path (empty disables journaling)")
	backtestCmd.Flags().BoolVarP(&btVerbose, "verbose", "v", false, "print every simulated exchange in every trial")
	backtestCmd.Flags().Int64Var(&btSeed, "seed", 0, "random seed (0 seeds from the clock)")

	backtestCmd.MarkFlagRequired("input")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if btTrials == 0 {
		btTrials = cfg.Backtest.Trials
	}
	if btFee < 0 {
		btFee = cfg.Backtest.Fee
	}
	if btStrategy == "" {
		btStrategy = cfg.Backtest.Strategy
	}
	if btDBPath == "" {
		btDBPath = cfg.Journal.DBPath
	}

	book, err := ledger.Load(btInput)
	if err != nil {
		return err
	}
	fmt.Printf("Archive records: %d\n", book.Len())

	factory, err := strategies.ByName(btStrategy, btFee)
	if err != nil {
		return err
	}

	seed := btSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := backtest.NewSimulator(book, btFee, rand.New(rand.NewSource(seed)))

	var j journal.Journal
	runID := id.New()
	if btDBPath != "" {
		sj, err := journal.NewSQLite(btDBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer sj.Close()
		j = sj
	}

	sum, err := sim.RunTrials(btTrials, factory, j, runID, btVerbose)
	if err != nil {
		return err
	}

	if j != nil {
		err := j.RecordRun(journal.RunRecord{
			RunID:    runID,
			Strategy: btStrategy,
			Symbol:   cfg.Archive.Symbol,
			Archive:  btInput,
			Fee:      btFee,
			Trials:   sum.Trials,
			Wins:     sum.Wins,
			Created:  time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		fmt.Printf("Journaled run %s\n", runID)
	}

	fmt.Printf("success count: %d, total count: %d\n", sum.Wins, sum.Trials)
	return nil
}
