package cpu

import "codeberg.org/vintar/cpuctl/internal/errors"

const (
	// I/O Errors
	ErrReadFailed  = errors.ErrorCode("cpu_read_failed")
	ErrWriteFailed = errors.ErrorCode("cpu_write_failed")

	// Parse Errors
	ErrParseFailed = errors.ErrorCode("cpu_parse_failed")

	// Thermal Errors
	ErrTemperatureReadFailed = errors.ErrorCode("cpu_temperature_read_failed")

	// Discovery Errors
	ErrDiscoverFailed = errors.ErrorCode("cpu_discover_failed")

	// Turbo Errors
	ErrTurboUnsupported = errors.ErrorCode("cpu_turbo_unsupported")

	// Dispatch Errors
	ErrInvalidWritable = errors.ErrorCode("cpu_invalid_writable")
)
