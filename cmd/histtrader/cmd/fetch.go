package cmd

import (
	"context"
	"fmt"

	"github.com/rustyeddy/histtrader/binance"
	"github.com/rustyeddy/histtrader/ledger"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Extend a trade archive backward in time",
	Long: `Fetch loads an existing archive, repeatedly asks the exchange for the
next older page of trades, and saves the grown archive back in place.

The archive must already exist and be non-empty: the exchange paginates by
trade id, so the first page has to be seeded from a known recent trade.

Requires ` + binance.APIKeyEnv + ` in the environment.

Example:
  histtrader fetch -i historical_trades.json -c 100 -s ETHBTC`,
	RunE: runFetch,
}

var (
	fetchInput  string
	fetchCount  int
	fetchSymbol string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchInput, "input", "i", "", "path to the archive file (required)")
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "c", 0, "number of pages to fetch (default from config)")
	fetchCmd.Flags().StringVarP(&fetchSymbol, "symbol", "s", "", "trading pair symbol (default from config)")

	fetchCmd.MarkFlagRequired("input")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if fetchCount == 0 {
		fetchCount = cfg.Archive.Pages
	}
	if fetchSymbol == "" {
		fetchSymbol = cfg.Archive.Symbol
	}

	client, err := binance.NewClientFromEnv()
	if err != nil {
		return err
	}

	book, err := ledger.Load(fetchInput)
	if err != nil {
		return err
	}
	printProgress(book)

	ctx := context.Background()
	for i := 0; i < fetchCount; i++ {
		if err := book.ExtendOlder(ctx, client, fetchSymbol); err != nil {
			return err
		}
		printProgress(book)
		if i%100 == 0 {
			fmt.Printf("Processing %d out of %d\n", i, fetchCount)
		}
	}

	return book.Save(fetchInput)
}

func printProgress(book *ledger.Book) {
	fmt.Printf("Id: %d, records count %d, min_ts: %s\n",
		book.MinTradeID(), book.Len(), book.MinTime().Format("2006-01-02 15:04:05"))
}
