// Package main provides the pharmaguard command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:     "pharmaguard",
		Short:   "Pharmacogenomic drug risk assessment from VCF panel data",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Long: `pharmaguard classifies drug risk from a patient's pharmacogenomic
panel: it parses panel VCF data, resolves star-allele diplotypes and
metabolizer phenotypes for six genes, and applies CPIC-style risk rules
per requested drug, including cross-drug interaction checks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newScenariosCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig wires viper to ~/.pharmaguard.yaml and PHARMAGUARD_* env vars.
// A missing config file is fine; everything has defaults.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetConfigFile(filepath.Join(home, ".pharmaguard.yaml"))
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("PHARMAGUARD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// newLogger builds the CLI logger. Errors fall back to a no-op logger so a
// broken logging setup never blocks an analysis.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
