package cpu

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"codeberg.org/vintar/cpuctl/internal/errors"
)

const (
	DefaultSysRoot     = "/sys/devices/system/cpu"
	DefaultThermalRoot = "/sys/class/thermal"

	thermalZonePattern = "thermal_zone"
	tempSubPath        = "temp"

	writeFilePerm = 0o644
)

var coreDirPattern = regexp.MustCompile(`^cpu([0-9]+)$`)

// SysfsAccessor implements System against the live cpufreq and
// thermal-zone hierarchies. Reads and writes are synchronous blocking
// syscalls; every failure propagates immediately with the offending path
// attached, no retries.
type SysfsAccessor struct {
	sysRoot     string
	thermalRoot string
}

// NewSysfsAccessor returns an accessor rooted at the standard kernel paths.
func NewSysfsAccessor() *SysfsAccessor {
	return NewSysfsAccessorAt(DefaultSysRoot, DefaultThermalRoot)
}

// NewSysfsAccessorAt returns an accessor with overridden hierarchy roots.
func NewSysfsAccessorAt(sysRoot, thermalRoot string) *SysfsAccessor {
	return &SysfsAccessor{
		sysRoot:     sysRoot,
		thermalRoot: thermalRoot,
	}
}

func (a *SysfsAccessor) readFile(path string) (string, error) {
	errFactory := errors.New()

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errFactory.Wrap(ErrReadFailed, err).WithData(path)
	}

	// Strip exactly one trailing newline
	return strings.TrimSuffix(string(raw), "\n"), nil
}

func (a *SysfsAccessor) ReadString(core, subPath string) (string, error) {
	return a.readFile(filepath.Join(a.sysRoot, core, subPath))
}

func (a *SysfsAccessor) ReadInt(core, subPath string) (int, error) {
	errFactory := errors.New()

	path := filepath.Join(a.sysRoot, core, subPath)
	content, err := a.readFile(path)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(content)
	if err != nil {
		return 0, errFactory.Wrap(ErrParseFailed, err).WithData(path)
	}

	return value, nil
}

// ReadTemp reads the thermal-zone sibling of a core: the core-name pattern
// is substituted with the thermal-zone pattern under the thermal hierarchy.
// A missing zone yields TemperatureNone, not an error.
func (a *SysfsAccessor) ReadTemp(core string) (Temperature, error) {
	errFactory := errors.New()

	zone := strings.Replace(core, "cpu", thermalZonePattern, 1)
	path := filepath.Join(a.thermalRoot, zone, tempSubPath)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return TemperatureNone, nil
	}

	content, err := a.readFile(path)
	if err != nil {
		return 0, errFactory.Wrap(ErrTemperatureReadFailed, err).WithData(path)
	}

	value, err := strconv.Atoi(content)
	if err != nil {
		return 0, errFactory.Wrap(ErrParseFailed, err).WithData(path)
	}

	return Temperature(value), nil
}

func (a *SysfsAccessor) Write(core, subPath, value string) error {
	errFactory := errors.New()

	path := filepath.Join(a.sysRoot, core, subPath)
	if err := os.WriteFile(path, []byte(value), writeFilePerm); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err).WithData(path)
	}

	return nil
}

// Cores lists the logical core indices present under the cpufreq hierarchy
// in ascending order.
func (a *SysfsAccessor) Cores() ([]int, error) {
	errFactory := errors.New()

	entries, err := os.ReadDir(a.sysRoot)
	if err != nil {
		return nil, errFactory.Wrap(ErrDiscoverFailed, err).WithData(a.sysRoot)
	}

	var indices []int
	for _, entry := range entries {
		match := coreDirPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}

		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		indices = append(indices, index)
	}

	sort.Ints(indices)

	return indices, nil
}
