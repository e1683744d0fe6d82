package cmd

import (
	"fmt"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/cleaning"
	"github.com/spf13/cobra"
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Report per-column missing-value counts and percentages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0])
		if err != nil {
			return err
		}
		rep := cleaning.DetectMissing(t)
		if len(rep) == 0 {
			fmt.Println("✓ No missing values detected")
			return nil
		}
		fmt.Printf("%-30s %10s %10s\n", "COLUMN", "MISSING", "PERCENT")
		for _, name := range t.Names() {
			s, ok := rep[name]
			if !ok {
				continue
			}
			fmt.Printf("%-30s %10d %9.2f%%\n", name, s.Count, s.Percent)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(missingCmd)
}
