package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Delimiter is the input field separator; the insurance extract ships
	// pipe-delimited. It is honored wherever a file is loaded.
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	MissingValues []string `mapstructure:"missing_values" yaml:"missing_values"`
	DropThreshold float64  `mapstructure:"drop_threshold" yaml:"drop_threshold"`
	IQRMultiplier float64  `mapstructure:"iqr_multiplier" yaml:"iqr_multiplier"`
	PlotsDir      string   `mapstructure:"plots_dir" yaml:"plots_dir"`
	Bins          int      `mapstructure:"bins" yaml:"bins"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.eda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".eda")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDA")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("delimiter", "|")
	v.SetDefault("missing_values", []string{"", "NA", "NaN", "null", "None"})
	v.SetDefault("drop_threshold", 0.5)
	v.SetDefault("iqr_multiplier", 1.5)
	v.SetDefault("plots_dir", "eda_plots")
	v.SetDefault("bins", 30)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".eda")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
