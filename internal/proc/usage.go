package proc

// Usage computes the utilization percentage between two ordered snapshots
// from the same source. A non-positive total delta signals a counter reset
// or a zero-length sampling interval and reports 0.0 by policy rather than
// dividing by zero. The result is clamped to [0, 100] to absorb timing
// races where counters advance between the idle and total reads.
func Usage(prev, cur Stat) float64 {
	curTotal, prevTotal := cur.Total(), prev.Total()
	if curTotal <= prevTotal {
		return 0.0
	}

	totalDelta := float64(curTotal - prevTotal)
	idleDelta := float64(cur.Idle) - float64(prev.Idle)

	percent := 100.0 * (1.0 - idleDelta/totalDelta)
	if percent < 0.0 {
		return 0.0
	}
	if percent > 100.0 {
		return 100.0
	}

	return percent
}
