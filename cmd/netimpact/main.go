// Command netimpact analyzes proposed network configuration changes:
// it diffs a proposal against a device's current configuration, correlates
// the changes with schema-declared cross-references, and reports which
// other objects are impacted.
package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"netimpact/internal/analysis"
	"netimpact/internal/collector"
	"netimpact/internal/config"
	"netimpact/internal/diff"
	"netimpact/internal/repository/sqlite"
	"netimpact/internal/schema"
)

var (
	cfg     *config.Config
	logger  *log.Logger
	cfgFlag string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "netimpact",
	Short: "Schema-aware impact analysis for network configuration changes",
	Long: `netimpact diffs a proposed device configuration against the current one,
matches the detected changes against the cross-references declared by the
schema model, and reports which configuration objects are impacted.

Current configurations come from files, from devices over SSH, or from
previously collected snapshots in the local database.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var (
			path string
			err  error
		)
		if cfgFlag != "" {
			cfg, path, err = config.LoadFromPath(cfgFlag)
		} else {
			cfg, path, err = config.Load()
		}
		if err != nil {
			return err
		}

		out := io.Discard
		if verbose {
			out = cmd.ErrOrStderr()
		}
		logger = log.New(out, "", log.LstdFlags)
		if path != "" {
			logger.Printf("config loaded from %s", path)
		}
		return nil
	}

	rootCmd.AddCommand(analyzeCmd, collectCmd, devicesCmd, discoverCmd, historyCmd, watchCmd)
}

// openRepo opens the snapshot database from the configured path.
func openRepo() (*sqlite.Repository, error) {
	return sqlite.New(cfg.Database.Path)
}

// newAnalyzer builds the analyzer from the configured schema model. A
// missing model is not fatal: the analysis proceeds without reference
// edges and reports zero dependencies.
func newAnalyzer() (*analysis.Analyzer, error) {
	model, err := schema.Load(cfg.Schema.Dir, cfg.Schema.Model)
	if err != nil {
		if !errors.Is(err, schema.ErrModelNotFound) {
			return nil, err
		}
		logger.Printf("schema model %q not found in %s, proceeding without reference edges",
			cfg.Schema.Model, cfg.Schema.Dir)
		model = nil
	}

	opts := []diff.Option{diff.WithMetadataSections(cfg.Analysis.MetadataSections)}
	if cfg.Analysis.FullReplace {
		opts = append(opts, diff.WithFullReplace())
	}
	return analysis.NewAnalyzer(model, logger, opts...), nil
}

// newCollector builds the device collector from configuration.
func newCollector() *collector.Collector {
	creds := collector.Credentials{
		Username:      cfg.Collector.Username,
		Password:      cfg.Collector.Password,
		KeyFile:       cfg.Collector.KeyFile,
		KeyPassphrase: cfg.Collector.KeyPassphrase,
	}

	opts := []collector.Option{
		collector.WithPort(cfg.Collector.Port),
		collector.WithCommand(cfg.Collector.Command),
		collector.WithLogger(logger),
	}
	if cfg.Collector.ConnectTimeout != nil {
		opts = append(opts, collector.WithConnectTimeout(cfg.Collector.ConnectTimeout.Duration()))
	}
	if cfg.Collector.CommandTimeout != nil {
		opts = append(opts, collector.WithCommandTimeout(cfg.Collector.CommandTimeout.Duration()))
	}
	return collector.NewCollector(creds, opts...)
}
