package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vintar/cpuctl/internal/cpu"
	"codeberg.org/vintar/cpuctl/internal/errors"
	"codeberg.org/vintar/cpuctl/internal/proc"
)

// fakeAccessor is an in-memory stand-in for the sysfs hierarchy so entity
// logic can be exercised without touching real files.
type fakeAccessor struct {
	ints     map[string]int
	strs     map[string]string
	temp     cpu.Temperature
	tempErr  error
	writeErr error
	writes   map[string]string
	cores    []int
}

func newFakeAccessor() *fakeAccessor {
	return &fakeAccessor{
		ints: map[string]int{
			"cpu0/cpufreq/scaling_max_freq": 3600000,
			"cpu0/cpufreq/scaling_min_freq": 400000,
			"cpu0/cpufreq/scaling_cur_freq": 2800000,
		},
		strs: map[string]string{
			"cpu0/cpufreq/scaling_governor":            "powersave",
			"cpu0/cpufreq/scaling_available_governors": "performance powersave",
		},
		temp:   cpu.Temperature(42000),
		writes: make(map[string]string),
		cores:  []int{0},
	}
}

func (f *fakeAccessor) key(core, subPath string) string {
	return core + "/" + subPath
}

func (f *fakeAccessor) ReadInt(core, subPath string) (int, error) {
	if v, ok := f.ints[f.key(core, subPath)]; ok {
		return v, nil
	}

	return 0, errors.New().WithData(cpu.ErrReadFailed, f.key(core, subPath))
}

func (f *fakeAccessor) ReadString(core, subPath string) (string, error) {
	if v, ok := f.strs[f.key(core, subPath)]; ok {
		return v, nil
	}

	return "", errors.New().WithData(cpu.ErrReadFailed, f.key(core, subPath))
}

func (f *fakeAccessor) ReadTemp(core string) (cpu.Temperature, error) {
	return f.temp, f.tempErr
}

func (f *fakeAccessor) Write(core, subPath, value string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes[f.key(core, subPath)] = value

	return nil
}

func (f *fakeAccessor) Cores() ([]int, error) {
	return f.cores, nil
}

func TestUpdate(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)

	require.NoError(t, core.Update())

	assert.Equal(t, "cpu0", core.Name)
	assert.Equal(t, cpu.Frequency(3600000), core.MaxFreq)
	assert.Equal(t, cpu.Frequency(400000), core.MinFreq)
	assert.Equal(t, cpu.Frequency(2800000), core.CurFreq)
	assert.Equal(t, cpu.Temperature(42000), core.CurTemp)
	assert.Equal(t, cpu.Governor("powersave"), core.Governor)
}

func TestUpdateMissingThermalZone(t *testing.T) {
	fake := newFakeAccessor()
	fake.temp = cpu.TemperatureNone

	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	assert.Equal(t, cpu.TemperatureNone, core.CurTemp)
}

func TestUpdatePartialFailureKeepsRefreshedFields(t *testing.T) {
	fake := newFakeAccessor()
	delete(fake.ints, "cpu0/cpufreq/scaling_cur_freq")

	core := cpu.NewCore(0, fake)
	err := core.Update()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, cpu.ErrReadFailed))

	// Frequencies refreshed before the failure stay valid, no rollback
	assert.Equal(t, cpu.Frequency(3600000), core.MaxFreq)
	assert.Equal(t, cpu.Frequency(400000), core.MinFreq)
}

func TestInitEstablishesFirstReadings(t *testing.T) {
	core := cpu.NewCore(0, newFakeAccessor())
	require.NoError(t, core.Init())

	assert.Equal(t, cpu.Frequency(2800000), core.CurFreq)
}

func TestSetMaxWritesThrough(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	require.NoError(t, core.SetMax(3200000))

	assert.Equal(t, "3200000", fake.writes["cpu0/cpufreq/scaling_max_freq"])
	assert.Equal(t, cpu.Frequency(3200000), core.MaxFreq)
}

func TestSetMaxFailureLeavesFieldUnchanged(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	fake.writeErr = errors.New().New(cpu.ErrWriteFailed)
	err := core.SetMax(3200000)
	require.Error(t, err)

	// The in-memory field is committed only after the kernel accepts
	// the write, so the entity stays consistent with hardware
	assert.Equal(t, cpu.Frequency(3600000), core.MaxFreq)
}

func TestSetMinWritesThrough(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	require.NoError(t, core.SetMin(800000))

	assert.Equal(t, "800000", fake.writes["cpu0/cpufreq/scaling_min_freq"])
	assert.Equal(t, cpu.Frequency(800000), core.MinFreq)
}

func TestSetGovernor(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	require.NoError(t, core.SetGovernor("performance"))
	assert.Equal(t, "performance", fake.writes["cpu0/cpufreq/scaling_governor"])
	assert.Equal(t, cpu.Governor("performance"), core.Governor)
}

func TestSetGovernorRejectedByKernel(t *testing.T) {
	fake := newFakeAccessor()
	core := cpu.NewCore(0, fake)
	require.NoError(t, core.Update())

	fake.writeErr = errors.New().New(cpu.ErrWriteFailed)
	require.Error(t, core.SetGovernor("bogus"))
	assert.Equal(t, cpu.Governor("powersave"), core.Governor)
}

func TestUpdateUsage(t *testing.T) {
	core := cpu.NewCore(0, newFakeAccessor())

	prev := proc.Stat{User: 100, Nice: 0, System: 50, Idle: 850}
	cur := proc.Stat{User: 150, Nice: 0, System: 80, Idle: 870}
	core.UpdateUsage(prev, cur)

	assert.InDelta(t, 80.0, core.CurUsage, 1e-9)
}

func TestWritableSubPath(t *testing.T) {
	assert.Equal(t, "cpufreq/scaling_max_freq", cpu.WritableMax.SubPath())
	assert.Equal(t, "cpufreq/scaling_min_freq", cpu.WritableMin.SubPath())
	assert.Equal(t, "cpufreq/scaling_governor", cpu.WritableGovernor.SubPath())
	assert.Empty(t, cpu.Writable(42).SubPath())
}

func TestDiscover(t *testing.T) {
	fake := newFakeAccessor()
	fake.cores = []int{0, 1, 2, 3}

	cores, err := cpu.Discover(fake)
	require.NoError(t, err)

	require.Len(t, cores, 4)
	assert.Equal(t, "cpu0", cores[0].Name)
	assert.Equal(t, "cpu3", cores[3].Name)
	assert.Equal(t, 3, cores[3].Index)
}

func TestDiscoverNoCores(t *testing.T) {
	fake := newFakeAccessor()
	fake.cores = nil

	_, err := cpu.Discover(fake)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, cpu.ErrDiscoverFailed))
}

func TestAvailableGovernors(t *testing.T) {
	governors, err := cpu.AvailableGovernors(newFakeAccessor())
	require.NoError(t, err)

	assert.Equal(t, []cpu.Governor{"performance", "powersave"}, governors)
}

func TestGetTurboIntelPstate(t *testing.T) {
	fake := newFakeAccessor()
	fake.ints["intel_pstate/no_turbo"] = 0

	enabled, err := cpu.GetTurbo(fake)
	require.NoError(t, err)
	assert.True(t, enabled)

	fake.ints["intel_pstate/no_turbo"] = 1
	enabled, err = cpu.GetTurbo(fake)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestGetTurboBoostFallback(t *testing.T) {
	fake := newFakeAccessor()
	fake.ints["cpufreq/boost"] = 1

	enabled, err := cpu.GetTurbo(fake)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestGetTurboUnsupported(t *testing.T) {
	_, err := cpu.GetTurbo(newFakeAccessor())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, cpu.ErrTurboUnsupported))
}

func TestSetTurbo(t *testing.T) {
	fake := newFakeAccessor()
	fake.ints["intel_pstate/no_turbo"] = 0

	require.NoError(t, cpu.SetTurbo(fake, false))
	assert.Equal(t, "1", fake.writes["intel_pstate/no_turbo"])

	require.NoError(t, cpu.SetTurbo(fake, true))
	assert.Equal(t, "0", fake.writes["intel_pstate/no_turbo"])
}
