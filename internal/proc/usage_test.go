package proc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/vintar/cpuctl/internal/proc"
)

func TestUsage(t *testing.T) {
	prev := proc.Stat{User: 100, Nice: 0, System: 50, Idle: 850}
	cur := proc.Stat{User: 150, Nice: 0, System: 80, Idle: 870}

	// idle delta 20 over total delta 100
	assert.InDelta(t, 80.0, proc.Usage(prev, cur), 1e-9)
}

func TestUsageIdenticalSnapshots(t *testing.T) {
	s := proc.Stat{User: 100, Nice: 0, System: 50, Idle: 850}

	assert.Zero(t, proc.Usage(s, s), "zero-length interval must report 0.0, not NaN")
}

func TestUsageCounterReset(t *testing.T) {
	prev := proc.Stat{User: 5000, System: 2000, Idle: 9000}
	cur := proc.Stat{User: 10, System: 5, Idle: 100}

	assert.Zero(t, proc.Usage(prev, cur), "a total decrease signals a reset and must not go negative")
}

func TestUsageFullyBusy(t *testing.T) {
	prev := proc.Stat{User: 100, Idle: 500}
	cur := proc.Stat{User: 300, Idle: 500}

	assert.InDelta(t, 100.0, proc.Usage(prev, cur), 1e-9)
}

func TestUsageClampedOnIdleRegression(t *testing.T) {
	// Idle moving backwards while the total advances is a timing race;
	// the raw ratio exceeds 100 and must be clamped.
	prev := proc.Stat{User: 100, Idle: 500}
	cur := proc.Stat{User: 300, Idle: 490}

	assert.InDelta(t, 100.0, proc.Usage(prev, cur), 1e-9)
}

func TestUsageAlwaysInRange(t *testing.T) {
	cases := []struct {
		name string
		prev proc.Stat
		cur  proc.Stat
	}{
		{"idle only", proc.Stat{Idle: 100}, proc.Stat{Idle: 200}},
		{"busy only", proc.Stat{User: 100}, proc.Stat{User: 200}},
		{"mixed", proc.Stat{User: 10, System: 10, Idle: 80}, proc.Stat{User: 40, System: 30, Idle: 130}},
		{"all categories", proc.Stat{User: 1, Nice: 2, System: 3, Idle: 4, IOWait: 5, IRQ: 6, SoftIRQ: 7, Steal: 8},
			proc.Stat{User: 10, Nice: 20, System: 30, Idle: 40, IOWait: 50, IRQ: 60, SoftIRQ: 70, Steal: 80}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			usage := proc.Usage(tc.prev, tc.cur)
			assert.GreaterOrEqual(t, usage, 0.0)
			assert.LessOrEqual(t, usage, 100.0)
		})
	}
}
