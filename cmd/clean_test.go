package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/internal/table"
)

func TestDelimiterRune(t *testing.T) {
	cases := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"", '|', true},
		{"|", '|', true},
		{"pipe", '|', true},
		{",", ',', true},
		{"comma", ',', true},
		{";", ';', true},
		{"tab", '\t', true},
		{"\t", '\t', true},
		{"::", 0, false},
	}
	for _, c := range cases {
		got, err := delimiterRune(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("delimiterRune(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("delimiterRune(%q) should fail", c.in)
		}
	}
}

func TestDefaultCleanOutput(t *testing.T) {
	got := defaultCleanOutput(filepath.Join("data", "ratings_v3.txt"))
	want := filepath.Join("data", "ratings_v3_clean.csv")
	if got != want {
		t.Fatalf("defaultCleanOutput = %q, want %q", got, want)
	}
}

func TestCleanCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "policies.txt")
	content := "Province|TotalPremium|Dead\n" +
		"Gauteng|10|\n" +
		"Gauteng|12|\n" +
		"|11|\n" +
		"Gauteng|13|\n" +
		"Gauteng|90|\n" +
		"Gauteng|9|\n" +
		"Gauteng|11|\n"
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	out := filepath.Join(dir, "clean.csv")

	rootCmd.SetArgs([]string{"clean", in, "--output", out, "--threshold", "0.5", "--iqr-k", "1.5"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("clean command: %v", err)
	}

	opt := table.DefaultLoadOptions()
	opt.Delimiter = ','
	tb, err := table.Load(out, opt)
	if err != nil {
		t.Fatalf("reload cleaned output: %v", err)
	}
	// The all-missing column is gone.
	names := strings.Join(tb.Names(), ",")
	if strings.Contains(names, "Dead") {
		t.Fatalf("sparse column survived: %s", names)
	}
	// The missing Province is filled with the mode and 90 is capped at 15.5.
	prov, err := tb.Column("Province")
	if err != nil {
		t.Fatalf("province: %v", err)
	}
	if prov.Strings[2] != "Gauteng" {
		t.Fatalf("province[2] = %q, want mode Gauteng", prov.Strings[2])
	}
	prem, err := tb.Column("TotalPremium")
	if err != nil {
		t.Fatalf("premium: %v", err)
	}
	if prem.Floats[4] != 15.5 {
		t.Fatalf("premium[4] = %v, want capped 15.5", prem.Floats[4])
	}
}
