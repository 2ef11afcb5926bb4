package cpu

// Domain types for type safety and validation
type (
	// Frequency is a CPU frequency in kHz, as exposed by cpufreq.
	Frequency int
	// Temperature is a thermal reading in millidegrees Celsius.
	Temperature int
	// Governor is a kernel frequency-scaling policy name.
	Governor string
)

// TemperatureNone marks a core without a thermal zone. The kernel does not
// expose a sensor for every core, so absence is not an error.
const TemperatureNone Temperature = -1

// Writable identifies which core attribute a write-through targets. The
// setters share one write path keyed on this enumeration; adding a new
// writable attribute means extending it and the matching setter.
type Writable int

const (
	WritableMax Writable = iota
	WritableMin
	WritableGovernor
)

// SubPath returns the cpufreq pseudo-file the attribute is persisted to.
func (w Writable) SubPath() string {
	switch w {
	case WritableMax:
		return "cpufreq/scaling_max_freq"
	case WritableMin:
		return "cpufreq/scaling_min_freq"
	case WritableGovernor:
		return "cpufreq/scaling_governor"
	default:
		return ""
	}
}

// Accessor performs raw reads and writes against the kernel pseudo-files
// belonging to a single logical core. It owns no domain semantics beyond
// byte-level I/O and newline trimming; the Core entity depends on it so
// update and write logic can be exercised against an in-memory fake.
type Accessor interface {
	// ReadInt reads the pseudo-file at core/subPath and parses it as a
	// base-10 integer.
	ReadInt(core, subPath string) (int, error)

	// ReadString reads the pseudo-file at core/subPath with the trailing
	// newline stripped.
	ReadString(core, subPath string) (string, error)

	// ReadTemp reads the thermal-zone sibling of core, returning
	// TemperatureNone when the zone does not exist.
	ReadTemp(core string) (Temperature, error)

	// Write persists value to the pseudo-file at core/subPath with no
	// added newline.
	Write(core, subPath, value string) error
}

// Enumerator lists the logical core indices present on the host.
type Enumerator interface {
	Cores() ([]int, error)
}

// System combines pseudo-file access with core discovery.
type System interface {
	Accessor
	Enumerator
}
