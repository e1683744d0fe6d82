package viz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/eda"
	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

func fixtureTable(t *testing.T) *table.Table {
	t.Helper()
	n := 40
	prem := make([]float64, n)
	claims := make([]float64, n)
	provs := make([]string, n)
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		prem[i] = float64(100 + i*3)
		claims[i] = float64(50 + i*2)
		if i%2 == 0 {
			provs[i] = "Gauteng"
		} else {
			provs[i] = "Western Cape"
		}
		dates[i] = time.Date(2015, time.Month(1+i%12), 10, 0, 0, 0, 0, time.UTC)
	}
	tb, err := table.New(
		&table.Column{Name: "TotalPremium", Kind: table.Numeric, Floats: prem, Missing: make([]bool, n)},
		&table.Column{Name: "TotalClaims", Kind: table.Numeric, Floats: claims, Missing: make([]bool, n)},
		&table.Column{Name: "Province", Kind: table.Categorical, Strings: provs, Missing: make([]bool, n)},
		&table.Column{Name: "TransactionMonth", Kind: table.Datetime, Times: dates, Missing: make([]bool, n)},
	)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tb
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("chart %s is empty", path)
	}
}

func TestHistogram(t *testing.T) {
	tb := fixtureTable(t)
	p := filepath.Join(t.TempDir(), "hist.png")
	if err := Histogram(tb, "TotalPremium", 10, p); err != nil {
		t.Fatalf("histogram: %v", err)
	}
	assertPNG(t, p)
}

func TestHistogramUnknownColumn(t *testing.T) {
	tb := fixtureTable(t)
	err := Histogram(tb, "Nope", 10, filepath.Join(t.TempDir(), "hist.png"))
	var se *table.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestBoxPlots(t *testing.T) {
	tb := fixtureTable(t)
	p := filepath.Join(t.TempDir(), "box.png")
	if err := BoxPlots(tb, nil, p); err != nil {
		t.Fatalf("box plots: %v", err)
	}
	assertPNG(t, p)
}

func TestScatter(t *testing.T) {
	tb := fixtureTable(t)
	p := filepath.Join(t.TempDir(), "scatter.png")
	if err := Scatter(tb, "TotalPremium", "TotalClaims", p); err != nil {
		t.Fatalf("scatter: %v", err)
	}
	assertPNG(t, p)
}

func TestHeatmap(t *testing.T) {
	tb := fixtureTable(t)
	m, err := eda.Correlations(tb)
	if err != nil {
		t.Fatalf("correlations: %v", err)
	}
	p := filepath.Join(t.TempDir(), "heat.png")
	if err := Heatmap(m, p); err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	assertPNG(t, p)
}

func TestTrendLines(t *testing.T) {
	tb := fixtureTable(t)
	series, err := eda.MonthlyTotalsByGroup(tb, "Province", "TransactionMonth", "TotalPremium")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	p := filepath.Join(t.TempDir(), "trend.png")
	if err := TrendLines(series, "Trends in TotalPremium by Province", "TotalPremium", p); err != nil {
		t.Fatalf("trend lines: %v", err)
	}
	assertPNG(t, p)
}
