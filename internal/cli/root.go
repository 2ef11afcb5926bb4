package cli

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/vintar/cpuctl/internal/config"
	"codeberg.org/vintar/cpuctl/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "cpuctl",
	Short:        "Inspect and control CPU frequency scaling",
	Long:         "cpuctl reads and writes the kernel cpufreq and thermal-zone interfaces to inspect and control per-core CPU power state.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())

		return nil
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("debug", false, "Enable debugging output")
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("raw", false, "Machine-readable output")
	pf.IntP("interval", "i", config.DefaultInterval, "Seconds between samples")
	pf.Bool("metrics", false, "Record samples to the metrics database")
	pf.String("metrics-db", config.DefaultMetricsDB, "Path to the metrics database")

	rootCmd.AddCommand(getCmd, setCmd, monitorCmd)
}
