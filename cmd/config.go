package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set eda configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("delimiter: %s\n", cfg.Delimiter)
		fmt.Printf("missing_values: %s\n", strings.Join(cfg.MissingValues, ","))
		fmt.Printf("drop_threshold: %.3f\n", cfg.DropThreshold)
		fmt.Printf("iqr_multiplier: %.3f\n", cfg.IQRMultiplier)
		fmt.Printf("plots_dir: %s\n", cfg.PlotsDir)
		fmt.Printf("bins: %d\n", cfg.Bins)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "delimiter":
			if _, err := delimiterRune(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "missing_values":
			cfg.MissingValues = strings.Split(val, ",")
		case "drop_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for drop_threshold: %v", val)
			}
			cfg.DropThreshold = f
		case "iqr_multiplier":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for iqr_multiplier: %v", val)
			}
			cfg.IQRMultiplier = f
		case "plots_dir":
			cfg.PlotsDir = val
		case "bins":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for bins: %v", val)
			}
			cfg.Bins = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
