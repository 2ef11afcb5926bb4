package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/vintar/cpuctl/internal/cpu"
	"codeberg.org/vintar/cpuctl/internal/display"
	"codeberg.org/vintar/cpuctl/internal/logger"
	"codeberg.org/vintar/cpuctl/internal/metrics"
	"codeberg.org/vintar/cpuctl/internal/pid"
	"codeberg.org/vintar/cpuctl/internal/proc"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously sample and display CPU state",
	RunE:  runMonitor,
}

type monitor struct {
	sys       *cpu.SysfsAccessor
	cores     []*cpu.Core
	sampler   *proc.Sampler
	collector metrics.Collector
	prev      []proc.Stat
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	if err := pid.Write(); err != nil {
		return err
	}
	defer pid.Remove()

	sys := cpu.NewSysfsAccessor()
	cores, err := cpu.Discover(sys)
	if err != nil {
		return err
	}

	for _, c := range cores {
		if err := c.Init(); err != nil {
			return err
		}
	}
	logger.Info().Int("cores", len(cores)).Msg("Detected CPU cores")

	collector, err := metrics.NewService(metrics.Config{
		DBPath:       cfg.MetricsDB,
		BatchSize:    32,
		BatchTimeout: 30,
		Enabled:      cfg.Metrics,
	}, logger.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close metrics collector")
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go handleSignals(cancel)

	sampler := proc.NewSampler()
	_, prev, err := sampler.SampleAll()
	if err != nil {
		return err
	}

	m := &monitor{
		sys:       sys,
		cores:     cores,
		sampler:   sampler,
		collector: collector,
		prev:      prev,
	}

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Exiting...")
			return nil
		case <-ticker.C:
			if err := m.tick(ctx); err != nil {
				return err
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func (m *monitor) tick(ctx context.Context) error {
	_, cur, err := m.sampler.SampleAll()
	if err != nil {
		return err
	}

	for _, c := range m.cores {
		if err := c.Update(); err != nil {
			return err
		}
		if c.Index < len(m.prev) && c.Index < len(cur) {
			c.UpdateUsage(m.prev[c.Index], cur[c.Index])
		}
	}
	m.prev = cur

	turbo, err := cpu.GetTurbo(m.sys)
	if err != nil {
		// Not every platform exposes a turbo knob
		turbo = false
	}

	if cfg.Raw {
		fmt.Print(display.RenderRawCores(m.cores))
	} else {
		fmt.Print(display.RenderCores(m.cores))
	}

	now := time.Now()
	for _, c := range m.cores {
		sample := &metrics.Sample{
			Timestamp: now,
			Core:      c.Index,
			Frequency: metrics.FrequencySample{
				Current: int(c.CurFreq),
				Min:     int(c.MinFreq),
				Max:     int(c.MaxFreq),
			},
			Thermal:  metrics.ThermalSample{Millidegrees: int(c.CurTemp)},
			Usage:    c.CurUsage,
			Governor: string(c.Governor),
			Turbo:    turbo,
		}
		if err := m.collector.Record(ctx, sample); err != nil {
			logger.Error().Err(err).Msg("failed to record sample")
		}
	}

	return nil
}
