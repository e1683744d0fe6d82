package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
	"github.com/spf13/cobra"
)

var convertOutput string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Load a delimited file and save it as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := loadTable(path)
		if err != nil {
			return err
		}
		out := convertOutput
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out = filepath.Join(filepath.Dir(path), base+".csv")
		}
		if err := table.Save(t, out); err != nil {
			return err
		}
		fmt.Printf("✓ Saved table to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output CSV path (default <input>.csv)")
}
