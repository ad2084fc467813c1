package commands

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/edmo-preprocessing/config"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	overrides cfg.Overrides

	conf *cfg.Root
	log  = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "edmo-prep",
	Short: "Prepare the EDMO two-party dialogue corpus",
	Long: `edmo-prep turns the corpus speech-activity annotations into turn-level
transcripts and downsamples the selected audio subset.

Configuration is read from --config, or config/$CONFIG_ENV/config.yaml when
present, then EDMO_* environment variables, then command-line flags.

Examples:
  # Extract turn and recording transcripts for the configured subset
  edmo-prep transcripts --labels-dir labels --output-dir transcripts_subset

  # Downsample the subset to 16 kHz
  edmo-prep downsample --target-sr 16000
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command; ctx is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is config/$CONFIG_ENV/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&overrides.SubsetConfig, "subset-config", "", "subset configuration file")
	pf.IntVar(&overrides.Workers, "workers", 0, "recordings or files processed in parallel")

	rootCmd.AddCommand(transcriptsCmd)
	rootCmd.AddCommand(downsampleCmd)
	rootCmd.AddCommand(subsetCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() error {
	c, err := cfg.Load(cfgFile)
	if err != nil {
		return err
	}
	c.Apply(overrides)
	conf = c

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	return nil
}
