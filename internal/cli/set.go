package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"codeberg.org/vintar/cpuctl/internal/cpu"
	"codeberg.org/vintar/cpuctl/internal/errors"
	"codeberg.org/vintar/cpuctl/internal/logger"
)

var setCore int

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write CPU state (requires root)",
}

var setMaxCmd = &cobra.Command{
	Use:   "max <kHz>",
	Short: "Set the scaling max frequency",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		freq, err := parseFrequency(args[0])
		if err != nil {
			return err
		}

		return forEachTargetCore(func(c *cpu.Core) error {
			return c.SetMax(freq)
		})
	},
}

var setMinCmd = &cobra.Command{
	Use:   "min <kHz>",
	Short: "Set the scaling min frequency",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		freq, err := parseFrequency(args[0])
		if err != nil {
			return err
		}

		return forEachTargetCore(func(c *cpu.Core) error {
			return c.SetMin(freq)
		})
	},
}

var setGovCmd = &cobra.Command{
	Use:   "gov <governor>",
	Short: "Set the scaling governor",
	Long:  "Set the scaling governor. Validity is enforced by the kernel; an unsupported name is rejected at write time.",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return forEachTargetCore(func(c *cpu.Core) error {
			return c.SetGovernor(cpu.Governor(args[0]))
		})
	},
}

var setTurboCmd = &cobra.Command{
	Use:       "turbo on|off",
	Short:     "Enable or disable turbo boost",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(_ *cobra.Command, args []string) error {
		switch args[0] {
		case "on":
			return cpu.SetTurbo(cpu.NewSysfsAccessor(), true)
		case "off":
			return cpu.SetTurbo(cpu.NewSysfsAccessor(), false)
		default:
			return errors.New().WithData(errors.ErrInvalidArgument, args[0])
		}
	},
}

func parseFrequency(arg string) (cpu.Frequency, error) {
	value, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New().Wrap(errors.ErrInvalidArgument, err)
	}

	return cpu.Frequency(value), nil
}

// forEachTargetCore applies op to the core selected with --core, or to
// every core when unset. Frequency bounds are not validated locally; the
// kernel clamps or rejects out-of-range values.
func forEachTargetCore(op func(*cpu.Core) error) error {
	cores, err := discoverCores()
	if err != nil {
		return err
	}

	for _, c := range cores {
		if setCore >= 0 && c.Index != setCore {
			continue
		}
		if err := op(c); err != nil {
			return err
		}
		logger.Debug().Str("core", c.Name).Msg("Value written")
	}

	return nil
}

func init() {
	setCmd.PersistentFlags().IntVar(&setCore, "core", -1, "Target a single core index (default: all cores)")
	setCmd.AddCommand(setMaxCmd, setMinCmd, setGovCmd, setTurboCmd)
}
