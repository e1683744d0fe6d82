package cmd

import (
	"fmt"
	"sort"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/eda"
	"github.com/spf13/cobra"
)

var (
	descCorr    bool
	descGroupBy string
	descMonthly string
	descValues  []string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summary statistics, structure and optional correlations or trends",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0])
		if err != nil {
			return err
		}

		stats, err := eda.Describe(t)
		if err != nil {
			return err
		}
		fmt.Printf("%-30s %8s %12s %12s %12s %12s %12s %12s %12s\n",
			"COLUMN", "COUNT", "MEAN", "STD", "MIN", "Q1", "MEDIAN", "Q3", "MAX")
		for _, s := range stats {
			fmt.Printf("%-30s %8d %12.4g %12.4g %12.4g %12.4g %12.4g %12.4g %12.4g\n",
				s.Name, s.Count, s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max)
		}

		rep := eda.Structure(t)
		fmt.Println("\nStructure:")
		for _, name := range t.Names() {
			fmt.Printf("- %s: %s\n", name, rep.Kinds[name])
		}

		if descCorr {
			m, err := eda.Correlations(t)
			if err != nil {
				return err
			}
			fmt.Println("\nCorrelations:")
			printCorr(m)
		}

		if descGroupBy != "" {
			if len(descValues) == 0 {
				return fmt.Errorf("--group-by requires --values")
			}
			gms, err := eda.GroupMeans(t, descGroupBy, descValues...)
			if err != nil {
				return err
			}
			fmt.Printf("\nMeans by %s:\n", descGroupBy)
			for _, gm := range gms {
				fmt.Printf("- %s (n=%d):", gm.Key, gm.N)
				names := make([]string, 0, len(gm.Means))
				for n := range gm.Means {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					fmt.Printf(" %s=%.4g", n, gm.Means[n])
				}
				fmt.Println()
			}
		}

		if descMonthly != "" {
			if len(descValues) == 0 {
				return fmt.Errorf("--monthly requires --values")
			}
			rows, err := eda.MonthlyTotals(t, descMonthly, descValues...)
			if err != nil {
				return err
			}
			fmt.Printf("\nMonthly totals by %s:\n", descMonthly)
			for _, r := range rows {
				fmt.Printf("- %s:", r.Month.Format("2006-01"))
				for _, n := range descValues {
					fmt.Printf(" %s=%.4g (%+.2f%%)", n, r.Totals[n], r.Change[n]*100)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func printCorr(m *eda.CorrMatrix) {
	fmt.Printf("%-30s", "")
	for _, n := range m.Columns {
		fmt.Printf(" %12s", n)
	}
	fmt.Println()
	for i, n := range m.Columns {
		fmt.Printf("%-30s", n)
		for j := range m.Columns {
			fmt.Printf(" %12.3f", m.Values[i][j])
		}
		fmt.Println()
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().BoolVar(&descCorr, "correlations", false, "print the Pearson correlation matrix of numeric columns")
	describeCmd.Flags().StringVar(&descGroupBy, "group-by", "", "categorical column to average --values by")
	describeCmd.Flags().StringVar(&descMonthly, "monthly", "", "datetime column for monthly totals of --values")
	describeCmd.Flags().StringSliceVar(&descValues, "values", nil, "numeric columns for --group-by / --monthly")
}
