// Package cmd provides the CLI commands for cloudguide.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloudguide/adapters/rates"
	"cloudguide/adapters/storage"
	"cloudguide/core/engine"
	"cloudguide/core/output"
	"cloudguide/core/ui"
	"cloudguide/internal/config"
	"cloudguide/internal/logging"
	"cloudguide/internal/metrics"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	outputFormat string
	noColor      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cloudguide",
	Short: "Plan cloud migrations and compare provider costs",
	Long: `cloudguide advises on cloud migrations and compares monthly
infrastructure costs across AWS, Azure, Google Cloud and Huawei Cloud.

Examples:
  cloudguide advise profile.yaml
  cloudguide compare --vcpu 4 --ram 16 --storage 256 --region europe
  cloudguide compare --spec spec.json --format json
  cloudguide estimate answers.yaml
  cloudguide providers huawei`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or YAML (default is $HOME/.cloudguide.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational messages")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, yaml, markdown)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".cloudguide.yaml")
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newEngine wires the configured rate source into an engine
func newEngine() *engine.Engine {
	cfg := config.Get()

	source := rates.NewMetricsSource(
		rates.NewCachingSource(rates.New(cfg.Pricing.RatesFile), cfg.Pricing.CacheTTL()),
		metrics.Default(),
	)
	return engine.New(source, engine.Config{
		Currency: cfg.Pricing.DefaultCurrency,
		Version:  Version,
	})
}

// openStore opens the configured analysis store
func openStore() (storage.Store, error) {
	cfg := config.Get()
	store, err := storage.Open(storage.Backend(cfg.Storage.Backend), storage.Options{
		Path: cfg.Storage.Path,
		DSN:  cfg.Storage.DSN,
	})
	if err != nil {
		return nil, err
	}
	logging.Debug("opened analysis store", zap.String("backend", cfg.Storage.Backend))
	return store, nil
}

// formatter resolves --format, falling back to the configured default
func formatter() (output.Formatter, error) {
	cfg := config.Get()
	name := outputFormat
	if name == "" {
		name = cfg.Output.DefaultFormat
	}

	registry := output.DefaultRegistry(noColor || cfg.Output.NoColor)
	f, ok := registry.GetFormatter(output.Format(name))
	if !ok {
		return nil, fmt.Errorf("unknown format %q (use one of %v)", name, registry.Formats())
	}
	return f, nil
}

// newWriter returns a UI writer honoring --quiet, --verbose and --no-color
func newWriter(out io.Writer) *ui.Writer {
	w := ui.NewWriter(out, noColor || config.Get().Output.NoColor)
	w.SetVerbosity(verbosity())
	return w
}

func verbosity() int {
	switch {
	case quiet:
		return 0
	case verbose:
		return 2
	default:
		return 1
	}
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout(cmd), "cloudguide version %s\n", Version)
	},
}
