package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/config"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile       string
	debug         bool
	flagDelimiter string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "eda",
	Short: "Exploratory data analysis for delimited insurance datasets",
	Long: `eda loads a delimited policy extract into a table, cleans it
(drops sparse columns, imputes missing values, caps outliers), computes
descriptive statistics and renders the standard EDA charts.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.eda/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "input delimiter: '|' | ',' | ';' | 'tab' (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{
			Delimiter:     "|",
			MissingValues: table.DefaultLoadOptions().MissingTokens,
			DropThreshold: 0.5,
			IQRMultiplier: 1.5,
			PlotsDir:      "eda_plots",
			Bins:          30,
		}
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("delimiter") && flagDelimiter != "" {
		cfg.Delimiter = flagDelimiter
	}
}

// delimiterRune maps a config/flag delimiter spelling to the rune handed to
// the loader.
func delimiterRune(s string) (rune, error) {
	switch s {
	case "", "|", "pipe":
		return '|', nil
	case ",", "comma":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %q (use '|' ',' ';' or 'tab')", s)
	}
}

// loadTable reads a delimited file using the effective configuration.
func loadTable(path string) (*table.Table, error) {
	opt := table.DefaultLoadOptions()
	if cfg != nil {
		d, err := delimiterRune(cfg.Delimiter)
		if err != nil {
			return nil, err
		}
		opt.Delimiter = d
		if len(cfg.MissingValues) > 0 {
			opt.MissingTokens = cfg.MissingValues
		}
	}
	t, err := table.Load(path, opt)
	if err != nil {
		return nil, err
	}
	if debug {
		fmt.Fprintf(os.Stderr, "loaded %s: %d rows, %d columns\n", path, t.NumRows(), t.NumCols())
	}
	return t, nil
}
