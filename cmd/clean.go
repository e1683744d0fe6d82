package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/cleaning"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
	"github.com/spf13/cobra"
)

var (
	cleanThreshold float64
	cleanIQRK      float64
	cleanOutput    string
	cleanNoImpute  bool
	cleanNoCap     bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Drop sparse columns, impute missing values and cap outliers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := loadTable(path)
		if err != nil {
			return err
		}

		threshold := cleanThreshold
		if !cmd.Flags().Changed("threshold") && cfg != nil && cfg.DropThreshold > 0 {
			threshold = cfg.DropThreshold
		}
		k := cleanIQRK
		if !cmd.Flags().Changed("iqr-k") && cfg != nil && cfg.IQRMultiplier > 0 {
			k = cfg.IQRMultiplier
		}

		t, dropped := cleaning.DropSparse(t, threshold)
		if len(dropped) > 0 {
			fmt.Printf("✓ Dropped columns with >%.0f%% or 100%% missing values: %s\n",
				threshold*100, strings.Join(dropped, ", "))
		} else {
			fmt.Println("✓ No columns exceeded the missing-value threshold")
		}

		if !cleanNoImpute {
			t, err = cleaning.Impute(t)
			if err != nil {
				return err
			}
			fmt.Println("✓ Filled missing values: mode for categorical, mean/median by skewness for numeric")
		}

		if !cleanNoCap {
			t, err = cleaning.CapOutliers(t, k)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Capped outliers using the IQR method (k=%.2g) for numeric columns\n", k)
		}

		out := cleanOutput
		if out == "" {
			out = defaultCleanOutput(path)
		}
		if err := table.Save(t, out); err != nil {
			return err
		}
		fmt.Printf("✓ Saved cleaned table to %s\n", out)
		return nil
	},
}

// defaultCleanOutput derives "<base>_clean.csv" next to the input file.
func defaultCleanOutput(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(filepath.Dir(path), base+"_clean.csv")
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Float64Var(&cleanThreshold, "threshold", 0.5, "missing-fraction above which a column is dropped")
	cleanCmd.Flags().Float64Var(&cleanIQRK, "iqr-k", cleaning.DefaultIQRMultiplier, "IQR multiplier for outlier capping")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output CSV path (default <input>_clean.csv)")
	cleanCmd.Flags().BoolVar(&cleanNoImpute, "no-impute", false, "skip missing-value imputation")
	cleanCmd.Flags().BoolVar(&cleanNoCap, "no-cap", false, "skip outlier capping")
}
