package metrics

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, sample *Sample) error
	Close() error
}

// Repository defines the interface for sample storage
type Repository interface {
	Record(sample *Sample) error
	Close() error
}

// Sample is one per-core reading taken during a monitor tick
type Sample struct {
	Timestamp time.Time
	Core      int
	Frequency FrequencySample
	Thermal   ThermalSample
	Usage     float64
	Governor  string
	Turbo     bool
}

// Domain value objects
type FrequencySample struct {
	Current int
	Min     int
	Max     int
}

type ThermalSample struct {
	// Millidegrees is -1 when the core has no thermal zone
	Millidegrees int
}
