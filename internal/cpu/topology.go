package cpu

import (
	"strings"

	"codeberg.org/vintar/cpuctl/internal/errors"
)

const (
	availableGovernorsSubPath = "cpufreq/scaling_available_governors"

	// Turbo pseudo-files live beside the per-core directories, so they
	// are addressed through the accessor with the directory as the core
	// name.
	pstateDir   = "intel_pstate"
	noTurboFile = "no_turbo"
	boostDir    = "cpufreq"
	boostFile   = "boost"
)

// Discover enumerates the host's logical cores into an ordered entity
// list. The entities are constructed only; call Init on each to populate
// readings.
func Discover(sys System) ([]*Core, error) {
	errFactory := errors.New()

	indices, err := sys.Cores()
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, errFactory.WithMessage(ErrDiscoverFailed, "no cpufreq cores found")
	}

	cores := make([]*Core, 0, len(indices))
	for _, index := range indices {
		cores = append(cores, NewCore(index, sys))
	}

	return cores, nil
}

// AvailableGovernors returns the governor set the kernel advertises for
// the first core. The set is uniform across cores on all known hardware.
func AvailableGovernors(a Accessor) ([]Governor, error) {
	raw, err := a.ReadString("cpu0", availableGovernorsSubPath)
	if err != nil {
		return nil, err
	}

	fields := strings.Fields(raw)
	governors := make([]Governor, 0, len(fields))
	for _, field := range fields {
		governors = append(governors, Governor(field))
	}

	return governors, nil
}

// GetTurbo reports whether turbo boost is enabled, probing the intel_pstate
// interface first and the generic cpufreq boost knob second.
func GetTurbo(a Accessor) (bool, error) {
	errFactory := errors.New()

	if value, err := a.ReadInt(pstateDir, noTurboFile); err == nil {
		return value == 0, nil
	}

	if value, err := a.ReadInt(boostDir, boostFile); err == nil {
		return value == 1, nil
	}

	return false, errFactory.New(ErrTurboUnsupported)
}

// SetTurbo enables or disables turbo boost through whichever interface the
// kernel exposes.
func SetTurbo(a Accessor, enabled bool) error {
	errFactory := errors.New()

	if _, err := a.ReadInt(pstateDir, noTurboFile); err == nil {
		value := "0"
		if !enabled {
			value = "1"
		}

		return a.Write(pstateDir, noTurboFile, value)
	}

	if _, err := a.ReadInt(boostDir, boostFile); err == nil {
		value := "1"
		if !enabled {
			value = "0"
		}

		return a.Write(boostDir, boostFile, value)
	}

	return errFactory.New(ErrTurboUnsupported)
}
