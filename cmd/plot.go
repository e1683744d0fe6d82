package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/eda"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/viz"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	plotType    string
	plotColumns []string
	plotX       string
	plotY       string
	plotGroupBy string
	plotDateCol string
	plotValue   string
	plotBins    int
	plotOutDir  string
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render EDA charts (hist, box, scatter, heatmap, trend) as PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(args[0])
		if err != nil {
			return err
		}

		outDir, err := plotRunDir()
		if err != nil {
			return err
		}

		switch plotType {
		case "hist":
			cols := plotColumns
			if len(cols) == 0 {
				cols = numericNames(t)
			}
			if len(cols) == 0 {
				return fmt.Errorf("plot hist: no numeric columns")
			}
			bins := plotBins
			if !cmd.Flags().Changed("bins") && cfg != nil && cfg.Bins > 0 {
				bins = cfg.Bins
			}
			for _, col := range cols {
				path := filepath.Join(outDir, "hist_"+col+".png")
				if err := viz.Histogram(t, col, bins, path); err != nil {
					return err
				}
				fmt.Printf("✓ Saved histogram of %s to %s\n", col, path)
			}
		case "box":
			path := filepath.Join(outDir, "boxplots.png")
			if err := viz.BoxPlots(t, plotColumns, path); err != nil {
				return err
			}
			fmt.Printf("✓ Saved box plots to %s\n", path)
		case "scatter":
			if plotX == "" || plotY == "" {
				return fmt.Errorf("plot scatter: --x and --y are required")
			}
			path := filepath.Join(outDir, fmt.Sprintf("scatter_%s_vs_%s.png", plotX, plotY))
			if err := viz.Scatter(t, plotX, plotY, path); err != nil {
				return err
			}
			fmt.Printf("✓ Saved scatter of %s vs %s to %s\n", plotX, plotY, path)
		case "heatmap":
			m, err := eda.Correlations(t, plotColumns...)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, "correlation_heatmap.png")
			if err := viz.Heatmap(m, path); err != nil {
				return err
			}
			fmt.Printf("✓ Saved correlation heatmap to %s\n", path)
		case "trend":
			if plotGroupBy == "" || plotDateCol == "" || plotValue == "" {
				return fmt.Errorf("plot trend: --group-by, --date-col and --value are required")
			}
			series, err := eda.MonthlyTotalsByGroup(t, plotGroupBy, plotDateCol, plotValue)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, fmt.Sprintf("trend_%s_by_%s.png", plotValue, plotGroupBy))
			title := fmt.Sprintf("Trends in %s by %s", plotValue, plotGroupBy)
			if err := viz.TrendLines(series, title, plotValue, path); err != nil {
				return err
			}
			fmt.Printf("✓ Saved trend lines to %s\n", path)
		default:
			return fmt.Errorf("unsupported --type: %s (use hist|box|scatter|heatmap|trend)", plotType)
		}
		return nil
	},
}

// plotRunDir creates a fresh uuid-suffixed directory under plots_dir so
// repeated runs never clobber earlier charts.
func plotRunDir() (string, error) {
	base := "eda_plots"
	if cfg != nil && cfg.PlotsDir != "" {
		base = cfg.PlotsDir
	}
	if plotOutDir != "" {
		base = plotOutDir
	}
	dir := filepath.Join(base, uuid.NewString()[:8])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir plot dir: %w", err)
	}
	return dir, nil
}

func numericNames(t *table.Table) []string {
	var out []string
	for _, c := range t.Columns() {
		if c.Kind == table.Numeric {
			out = append(out, c.Name)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotType, "type", "hist", "chart type: hist|box|scatter|heatmap|trend")
	plotCmd.Flags().StringSliceVar(&plotColumns, "columns", nil, "columns to plot (default all numeric)")
	plotCmd.Flags().StringVar(&plotX, "x", "", "x column for scatter")
	plotCmd.Flags().StringVar(&plotY, "y", "", "y column for scatter")
	plotCmd.Flags().StringVar(&plotGroupBy, "group-by", "", "categorical column for trend lines")
	plotCmd.Flags().StringVar(&plotDateCol, "date-col", "", "datetime column for trend lines")
	plotCmd.Flags().StringVar(&plotValue, "value", "", "numeric column for trend lines")
	plotCmd.Flags().IntVar(&plotBins, "bins", 30, "histogram bin count")
	plotCmd.Flags().StringVarP(&plotOutDir, "out-dir", "o", "", "base output directory (default plots_dir from config)")
}
