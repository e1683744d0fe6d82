package cmd

import (
	"fmt"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/cleaning"
	"github.com/spf13/cobra"
)

var outIQRK float64

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "Report IQR outlier bounds and counts per numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0])
		if err != nil {
			return err
		}
		k := outIQRK
		if !cmd.Flags().Changed("iqr-k") && cfg != nil && cfg.IQRMultiplier > 0 {
			k = cfg.IQRMultiplier
		}
		rep, err := cleaning.DetectOutliers(t, k)
		if err != nil {
			return err
		}
		if len(rep) == 0 {
			fmt.Println("✓ No numeric columns found")
			return nil
		}
		fmt.Printf("%-30s %14s %14s %10s\n", "COLUMN", "LOWER", "UPPER", "OUTLIERS")
		for _, name := range t.Names() {
			b, ok := rep[name]
			if !ok {
				continue
			}
			fmt.Printf("%-30s %14.4g %14.4g %10d\n", name, b.Lower, b.Upper, b.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	outliersCmd.Flags().Float64Var(&outIQRK, "iqr-k", cleaning.DefaultIQRMultiplier, "IQR multiplier for the outlier fences")
}
