package display_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/vintar/cpuctl/internal/cpu"
	"codeberg.org/vintar/cpuctl/internal/display"
)

func TestFormatFrequency(t *testing.T) {
	assert.Equal(t, "3600 MHz", display.FormatFrequency(3600000))
	assert.Equal(t, "0 MHz", display.FormatFrequency(0))
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "45°C", display.FormatTemperature(45000))
	assert.Equal(t, "n/a", display.FormatTemperature(cpu.TemperatureNone))
}

func TestRawCore(t *testing.T) {
	core := &cpu.Core{Name: "cpu0", CurFreq: 2800000}

	assert.Equal(t, "cpu0 2800000", display.RawCore(core))
}

func TestRenderRawCores(t *testing.T) {
	cores := []*cpu.Core{
		{Name: "cpu0", CurFreq: 2800000},
		{Name: "cpu1", CurFreq: 1200000},
	}

	out := display.RenderRawCores(cores)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{"cpu0 2800000", "cpu1 1200000"}, lines)
}

func TestFormatUsage(t *testing.T) {
	assert.Equal(t, "80.0%", display.FormatUsage(80.0))
}

func TestFormatGovernors(t *testing.T) {
	governors := []cpu.Governor{"performance", "powersave"}

	assert.Equal(t, "performance powersave", display.FormatGovernors(governors))
}

func TestFormatTurbo(t *testing.T) {
	assert.Equal(t, "true", display.FormatTurbo(true, true))
	assert.Equal(t, "Turbo is enabled", display.FormatTurbo(true, false))
	assert.Equal(t, "Turbo is not enabled", display.FormatTurbo(false, false))
}
