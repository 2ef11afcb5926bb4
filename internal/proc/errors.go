package proc

import "codeberg.org/vintar/cpuctl/internal/errors"

const (
	// I/O Errors
	ErrStatReadFailed = errors.ErrorCode("proc_stat_read_failed")

	// Parse Errors
	ErrStatParseFailed = errors.ErrorCode("proc_stat_parse_failed")
	ErrStatMalformed   = errors.ErrorCode("proc_stat_malformed")
)
