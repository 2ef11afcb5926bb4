package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codeberg.org/vintar/cpuctl/internal/cpu"
)

const (
	kHzPerMHz            = 1000
	milliPerDegree       = 1000
	warmThresholdDegrees = 40
	hotThresholdDegrees  = 60
)

// Styles
var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	curFreqStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tempCool     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tempWarm     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	tempHot      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	absentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// FormatFrequency renders a cpufreq kHz value in MHz.
func FormatFrequency(f cpu.Frequency) string {
	return fmt.Sprintf("%d MHz", int(f)/kHzPerMHz)
}

// FormatTemperature renders a millidegree reading in whole degrees, or
// "n/a" for a core without a thermal zone.
func FormatTemperature(t cpu.Temperature) string {
	if t == cpu.TemperatureNone {
		return "n/a"
	}

	return fmt.Sprintf("%d°C", int(t)/milliPerDegree)
}

func temperatureStyle(t cpu.Temperature) lipgloss.Style {
	degrees := int(t) / milliPerDegree
	switch {
	case t == cpu.TemperatureNone:
		return absentStyle
	case degrees > hotThresholdDegrees:
		return tempHot
	case degrees > warmThresholdDegrees:
		return tempWarm
	default:
		return tempCool
	}
}

// FormatCore renders one styled row: name, frequency bounds, current
// frequency, temperature colored by threshold, usage and governor.
func FormatCore(c *cpu.Core) string {
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%5.1f%%\t%s",
		nameStyle.Render(c.Name+":"),
		FormatFrequency(c.MaxFreq),
		FormatFrequency(c.MinFreq),
		curFreqStyle.Render(FormatFrequency(c.CurFreq)),
		temperatureStyle(c.CurTemp).Render(FormatTemperature(c.CurTemp)),
		c.CurUsage,
		c.Governor,
	)
}

// RawCore renders one machine-readable row: name and current frequency in
// kHz.
func RawCore(c *cpu.Core) string {
	return fmt.Sprintf("%s %d", c.Name, int(c.CurFreq))
}

// RenderCores renders all cores as a table with a header row.
func RenderCores(cores []*cpu.Core) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("name\tmax\tmin\tcur\ttemp\tusage\tgovernor"))
	b.WriteByte('\n')

	for _, c := range cores {
		b.WriteString(FormatCore(c))
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderRawCores renders all cores as bare name/frequency pairs.
func RenderRawCores(cores []*cpu.Core) string {
	var b strings.Builder
	for _, c := range cores {
		b.WriteString(RawCore(c))
		b.WriteByte('\n')
	}

	return b.String()
}

// FormatUsage renders a utilization percentage.
func FormatUsage(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// FormatGovernors renders the advertised governor list on one line.
func FormatGovernors(governors []cpu.Governor) string {
	names := make([]string, 0, len(governors))
	for _, g := range governors {
		names = append(names, string(g))
	}

	return strings.Join(names, " ")
}

// FormatTurbo renders the turbo boost state.
func FormatTurbo(enabled bool, raw bool) string {
	if raw {
		return fmt.Sprintf("%t", enabled)
	}
	if enabled {
		return "Turbo is enabled"
	}

	return "Turbo is not enabled"
}
