package cmd

import (
	"github.com/rustyeddy/histtrader/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "histtrader",
	Short: "Maintain and backtest a local archive of historical exchange trades",
	Long: `Histtrader keeps an append-only local archive of historical trades
fetched page by page from the exchange, and replays it against trading
strategies.

It provides tools for:
  - Growing the archive backward in time (fetch)
  - Backtesting strategies over random windows of the archive (backtest)
  - Producing the reciprocal-market view of an archive (invert)`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig returns the file config when --config was given, defaults
// otherwise. Flags the user set explicitly win over both.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}
