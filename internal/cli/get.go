package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/vintar/cpuctl/internal/cpu"
	"codeberg.org/vintar/cpuctl/internal/display"
	"codeberg.org/vintar/cpuctl/internal/proc"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read CPU state",
}

var getFreqCmd = &cobra.Command{
	Use:   "freq",
	Short: "Show the current scaling frequency of every core",
	RunE: func(_ *cobra.Command, _ []string) error {
		cores, err := discoverCores()
		if err != nil {
			return err
		}

		for _, c := range cores {
			if err := c.RefreshCur(); err != nil {
				return err
			}
			if cfg.Raw {
				fmt.Println(display.RawCore(c))
			} else {
				fmt.Printf("%s is currently @ %s\n", c.Name, display.FormatFrequency(c.CurFreq))
			}
		}

		return nil
	},
}

var getTempCmd = &cobra.Command{
	Use:   "temp",
	Short: "Show the temperature of every core",
	RunE: func(_ *cobra.Command, _ []string) error {
		cores, err := discoverCores()
		if err != nil {
			return err
		}

		for _, c := range cores {
			if err := c.RefreshTemp(); err != nil {
				return err
			}
			if cfg.Raw {
				fmt.Println(int(c.CurTemp))
			} else {
				fmt.Printf("%s: %s\n", c.Name, display.FormatTemperature(c.CurTemp))
			}
		}

		return nil
	},
}

var getGovCmd = &cobra.Command{
	Use:   "gov",
	Short: "Show the active governor of every core",
	RunE: func(_ *cobra.Command, _ []string) error {
		cores, err := discoverCores()
		if err != nil {
			return err
		}

		for _, c := range cores {
			if err := c.RefreshGovernor(); err != nil {
				return err
			}
			if cfg.Raw {
				fmt.Println(c.Governor)
			} else {
				fmt.Printf("%s: %s\n", c.Name, c.Governor)
			}
		}

		return nil
	},
}

var getGovsCmd = &cobra.Command{
	Use:   "govs",
	Short: "List the governors the kernel advertises",
	RunE: func(_ *cobra.Command, _ []string) error {
		governors, err := cpu.AvailableGovernors(cpu.NewSysfsAccessor())
		if err != nil {
			return err
		}

		if cfg.Raw {
			for _, g := range governors {
				fmt.Println(g)
			}
		} else {
			fmt.Println(display.FormatGovernors(governors))
		}

		return nil
	},
}

var getTurboCmd = &cobra.Command{
	Use:   "turbo",
	Short: "Show whether turbo boost is enabled",
	RunE: func(_ *cobra.Command, _ []string) error {
		enabled, err := cpu.GetTurbo(cpu.NewSysfsAccessor())
		if err != nil {
			return err
		}

		fmt.Println(display.FormatTurbo(enabled, cfg.Raw))

		return nil
	},
}

var getUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show aggregate CPU utilization over one sampling interval",
	RunE: func(_ *cobra.Command, _ []string) error {
		sampler := proc.NewSampler()

		prev, err := sampler.Sample()
		if err != nil {
			return err
		}

		// Utilization needs two time-separated snapshots
		time.Sleep(time.Duration(cfg.Interval) * time.Second)

		cur, err := sampler.Sample()
		if err != nil {
			return err
		}

		usage := proc.Usage(prev, cur)
		if cfg.Raw {
			fmt.Printf("%f\n", usage)
		} else {
			fmt.Printf("CPU usage: %s\n", display.FormatUsage(usage))
		}

		return nil
	},
}

var getCpusCmd = &cobra.Command{
	Use:   "cpus",
	Short: "Show the full state of every core",
	RunE: func(_ *cobra.Command, _ []string) error {
		cores, err := discoverCores()
		if err != nil {
			return err
		}

		sampler := proc.NewSampler()
		_, prev, err := sampler.SampleAll()
		if err != nil {
			return err
		}

		time.Sleep(time.Duration(cfg.Interval) * time.Second)

		_, cur, err := sampler.SampleAll()
		if err != nil {
			return err
		}

		for _, c := range cores {
			if err := c.Update(); err != nil {
				return err
			}
			if c.Index < len(prev) && c.Index < len(cur) {
				c.UpdateUsage(prev[c.Index], cur[c.Index])
			}
		}

		if cfg.Raw {
			fmt.Print(display.RenderRawCores(cores))
		} else {
			fmt.Print(display.RenderCores(cores))
		}

		return nil
	},
}

func discoverCores() ([]*cpu.Core, error) {
	return cpu.Discover(cpu.NewSysfsAccessor())
}

func init() {
	getCmd.AddCommand(getFreqCmd, getTempCmd, getGovCmd, getGovsCmd, getTurboCmd, getUsageCmd, getCpusCmd)
}
