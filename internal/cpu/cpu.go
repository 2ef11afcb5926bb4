package cpu

import (
	"fmt"
	"strconv"

	"codeberg.org/vintar/cpuctl/internal/errors"
	"codeberg.org/vintar/cpuctl/internal/proc"
)

const (
	maxFreqSubPath  = "cpufreq/scaling_max_freq"
	minFreqSubPath  = "cpufreq/scaling_min_freq"
	curFreqSubPath  = "cpufreq/scaling_cur_freq"
	governorSubPath = "cpufreq/scaling_governor"
)

// Core models one logical CPU. Name and Index are fixed at construction;
// the remaining fields are populated by Update through the injected
// Accessor. A Core is owned by its collection for one invocation and must
// not be mutated from multiple goroutines without external serialization.
type Core struct {
	Name     string
	Index    int
	MaxFreq  Frequency
	MinFreq  Frequency
	CurFreq  Frequency
	CurTemp  Temperature
	CurUsage float64
	Governor Governor

	accessor Accessor
}

// NewCore constructs an entity for the core with the given ordinal. All
// readings are unset until Init or Update.
func NewCore(index int, accessor Accessor) *Core {
	return &Core{
		Name:     fmt.Sprintf("cpu%d", index),
		Index:    index,
		CurTemp:  TemperatureNone,
		accessor: accessor,
	}
}

// Init establishes first-ever readings for a freshly constructed core.
func (c *Core) Init() error {
	return c.Update()
}

// Update refreshes frequencies, temperature and governor through the
// accessor. Fields refreshed before a failing read keep their new values;
// there is no rollback.
func (c *Core) Update() error {
	if err := c.RefreshMax(); err != nil {
		return err
	}
	if err := c.RefreshMin(); err != nil {
		return err
	}
	if err := c.RefreshCur(); err != nil {
		return err
	}
	if err := c.RefreshTemp(); err != nil {
		return err
	}

	return c.RefreshGovernor()
}

// RefreshMax re-reads the scaling max frequency.
func (c *Core) RefreshMax() error {
	value, err := c.accessor.ReadInt(c.Name, maxFreqSubPath)
	if err != nil {
		return err
	}
	c.MaxFreq = Frequency(value)

	return nil
}

// RefreshMin re-reads the scaling min frequency.
func (c *Core) RefreshMin() error {
	value, err := c.accessor.ReadInt(c.Name, minFreqSubPath)
	if err != nil {
		return err
	}
	c.MinFreq = Frequency(value)

	return nil
}

// RefreshCur re-reads the current scaling frequency.
func (c *Core) RefreshCur() error {
	value, err := c.accessor.ReadInt(c.Name, curFreqSubPath)
	if err != nil {
		return err
	}
	c.CurFreq = Frequency(value)

	return nil
}

// RefreshTemp re-reads the core temperature, tolerating a missing sensor.
func (c *Core) RefreshTemp() error {
	value, err := c.accessor.ReadTemp(c.Name)
	if err != nil {
		return err
	}
	c.CurTemp = value

	return nil
}

// RefreshGovernor re-reads the active scaling governor.
func (c *Core) RefreshGovernor() error {
	value, err := c.accessor.ReadString(c.Name, governorSubPath)
	if err != nil {
		return err
	}
	c.Governor = Governor(value)

	return nil
}

// UpdateUsage assigns the utilization derived from two ordered counter
// snapshots. Degenerate deltas are reported as 0.0 by the calculator, so
// this never fails.
func (c *Core) UpdateUsage(prev, cur proc.Stat) {
	c.CurUsage = proc.Usage(prev, cur)
}

// SetMax writes a new scaling max frequency. The in-memory field is
// committed only after the kernel accepts the write, so a failed set
// leaves the entity consistent with hardware.
func (c *Core) SetMax(freq Frequency) error {
	if err := c.writeValue(WritableMax, strconv.Itoa(int(freq))); err != nil {
		return err
	}
	c.MaxFreq = freq

	return nil
}

// SetMin writes a new scaling min frequency, committing on success only.
func (c *Core) SetMin(freq Frequency) error {
	if err := c.writeValue(WritableMin, strconv.Itoa(int(freq))); err != nil {
		return err
	}
	c.MinFreq = freq

	return nil
}

// SetGovernor writes a new scaling governor. Validity is enforced by the
// kernel, which rejects names it does not advertise.
func (c *Core) SetGovernor(gov Governor) error {
	if err := c.writeValue(WritableGovernor, string(gov)); err != nil {
		return err
	}
	c.Governor = gov

	return nil
}

func (c *Core) writeValue(w Writable, value string) error {
	subPath := w.SubPath()
	if subPath == "" {
		return errors.New().WithData(ErrInvalidWritable, int(w))
	}

	return c.accessor.Write(c.Name, subPath, value)
}
