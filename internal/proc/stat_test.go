package proc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vintar/cpuctl/internal/errors"
	"codeberg.org/vintar/cpuctl/internal/proc"
)

const statFixture = `cpu  4705 150 1120 16250 520 30 115 80 0 0
cpu0 2400 75 560 8100 260 15 60 40 0 0
cpu1 2305 75 560 8150 260 15 55 40 0 0
intr 114930548 113199788 3 0 5 263 0 4
ctxt 1990473
btime 1418183276
`

func TestParse(t *testing.T) {
	aggregate, perCore, err := proc.Parse(strings.NewReader(statFixture))
	require.NoError(t, err)

	assert.Equal(t, proc.Stat{
		User: 4705, Nice: 150, System: 1120, Idle: 16250,
		IOWait: 520, IRQ: 30, SoftIRQ: 115, Steal: 80,
	}, aggregate)

	require.Len(t, perCore, 2)
	assert.Equal(t, uint64(8100), perCore[0].Idle)
	assert.Equal(t, uint64(8150), perCore[1].Idle)
}

func TestParseTotal(t *testing.T) {
	aggregate, _, err := proc.Parse(strings.NewReader(statFixture))
	require.NoError(t, err)

	assert.Equal(t, uint64(4705+150+1120+16250+520+30+115+80), aggregate.Total())
}

func TestParseShortLine(t *testing.T) {
	// Old kernels emit only user, nice, system, idle
	aggregate, _, err := proc.Parse(strings.NewReader("cpu 100 0 50 850\n"))
	require.NoError(t, err)

	assert.Equal(t, proc.Stat{User: 100, Nice: 0, System: 50, Idle: 850}, aggregate)
	assert.Zero(t, aggregate.Steal)
}

func TestParseMissingAggregateLine(t *testing.T) {
	_, _, err := proc.Parse(strings.NewReader("intr 12345\n"))
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, proc.ErrStatMalformed))
}

func TestParseNonNumericCounter(t *testing.T) {
	_, _, err := proc.Parse(strings.NewReader("cpu 100 banana 50 850\n"))
	require.Error(t, err)

	assert.True(t, errors.HasCode(err, proc.ErrStatParseFailed))
}

func TestSamplerSampleAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stat")
	require.NoError(t, os.WriteFile(path, []byte(statFixture), 0o600))

	sampler := proc.NewSamplerAt(path)
	aggregate, perCore, err := sampler.SampleAll()
	require.NoError(t, err)

	assert.Equal(t, uint64(4705), aggregate.User)
	assert.Len(t, perCore, 2)
}

func TestSamplerMissingSource(t *testing.T) {
	sampler := proc.NewSamplerAt(filepath.Join(t.TempDir(), "missing"))

	_, err := sampler.Sample()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, proc.ErrStatReadFailed))
}
