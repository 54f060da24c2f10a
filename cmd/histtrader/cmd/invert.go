package cmd

import (
	"fmt"

	"github.com/rustyeddy/histtrader/ledger"
	"github.com/spf13/cobra"
)

var invertCmd = &cobra.Command{
	Use:   "invert",
	Short: "Write the reciprocal-market view of an archive",
	Long: `Invert rewrites every trade of an archive for the flipped trading pair:
price becomes 1/price and the base/quote quantities swap. Trade ids and
timestamps are preserved, so the output is a valid archive of its own.

Example:
  histtrader invert -i ethbtc.json -o btceth.json`,
	RunE: runInvert,
}

var (
	invInput  string
	invOutput string
)

func init() {
	rootCmd.AddCommand(invertCmd)

	invertCmd.Flags().StringVarP(&invInput, "input", "i", "", "path to the source archive (required)")
	invertCmd.Flags().StringVarP(&invOutput, "output", "o", "", "path for the inverted archive (required)")

	invertCmd.MarkFlagRequired("input")
	invertCmd.MarkFlagRequired("output")
}

func runInvert(cmd *cobra.Command, args []string) error {
	book, err := ledger.Load(invInput)
	if err != nil {
		return err
	}

	inverted, err := ledger.Invert(book.Trades())
	if err != nil {
		return err
	}

	out, err := ledger.FromTrades(inverted)
	if err != nil {
		return err
	}
	if err := out.Save(invOutput); err != nil {
		return err
	}

	fmt.Printf("Inverted %d trades: %s -> %s\n", out.Len(), invInput, invOutput)
	return nil
}
