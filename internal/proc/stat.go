package proc

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"codeberg.org/vintar/cpuctl/internal/errors"
)

const DefaultStatPath = "/proc/stat"

// Stat is one point-in-time snapshot of the kernel's cumulative
// time-in-state counters, in jiffies. Counters are monotonically
// non-decreasing between reboots; two snapshots are meaningfully compared
// only when taken from the same source in increasing time order.
type Stat struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
	Steal   uint64
}

// Total returns the sum over all counter categories.
func (s Stat) Total() uint64 {
	return s.User + s.Nice + s.System + s.Idle + s.IOWait + s.IRQ + s.SoftIRQ + s.Steal
}

// Sampler reads counter snapshots from a /proc/stat-format source.
type Sampler struct {
	path string
}

// NewSampler returns a sampler reading the live kernel statistics.
func NewSampler() *Sampler {
	return NewSamplerAt(DefaultStatPath)
}

// NewSamplerAt returns a sampler with an overridden source path.
func NewSamplerAt(path string) *Sampler {
	return &Sampler{path: path}
}

// Sample reads the aggregate counter snapshot.
func (s *Sampler) Sample() (Stat, error) {
	aggregate, _, err := s.SampleAll()

	return aggregate, err
}

// SampleAll reads the aggregate snapshot and the per-core snapshots in
// core order.
func (s *Sampler) SampleAll() (Stat, []Stat, error) {
	errFactory := errors.New()

	f, err := os.Open(s.path)
	if err != nil {
		return Stat{}, nil, errFactory.Wrap(ErrStatReadFailed, err).WithData(s.path)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a /proc/stat-format stream: the aggregate "cpu" line first,
// then one "cpuN" line per core. Lines past the cpu block are ignored.
func Parse(r io.Reader) (Stat, []Stat, error) {
	errFactory := errors.New()

	scanner := bufio.NewScanner(r)
	var (
		aggregate Stat
		perCore   []Stat
		seen      bool
	)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || !strings.HasPrefix(fields[0], "cpu") {
			break
		}

		stat, err := parseFields(fields)
		if err != nil {
			return Stat{}, nil, err
		}

		if fields[0] == "cpu" {
			aggregate = stat
			seen = true
		} else {
			perCore = append(perCore, stat)
		}
	}

	if err := scanner.Err(); err != nil {
		return Stat{}, nil, errFactory.Wrap(ErrStatReadFailed, err)
	}
	if !seen {
		return Stat{}, nil, errFactory.WithMessage(ErrStatMalformed, "missing aggregate cpu line")
	}

	return aggregate, perCore, nil
}

// parseFields maps the fixed-width ordered columns onto the counter
// categories. Kernels newer than 2.6.11 append guest columns; those are
// already accounted in user/nice and are ignored.
func parseFields(fields []string) (Stat, error) {
	errFactory := errors.New()

	const minColumns = 5 // user, nice, system, idle at minimum
	if len(fields) < minColumns {
		return Stat{}, errFactory.WithData(ErrStatMalformed, fields[0])
	}

	values := make([]uint64, 8)
	for i := range values {
		if i+1 >= len(fields) {
			break
		}

		value, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return Stat{}, errFactory.Wrap(ErrStatParseFailed, err).WithData(fields[0])
		}
		values[i] = value
	}

	return Stat{
		User:    values[0],
		Nice:    values[1],
		System:  values[2],
		Idle:    values[3],
		IOWait:  values[4],
		IRQ:     values[5],
		SoftIRQ: values[6],
		Steal:   values[7],
	}, nil
}
