package calltree

// Granularity is the display unit chosen for a recorded duration. Ordinals go
// from finest to coarsest so the common granularity of two durations is the
// larger of the two.
type Granularity uint8

const (
	Nanoseconds Granularity = iota
	Microseconds
	Milliseconds
	Seconds
)

const (
	nanosPerMicrosecond uint64 = 1_000
	nanosPerMillisecond uint64 = 1_000_000
	nanosPerSecond      uint64 = 1_000_000_000
)

// Classify returns the coarsest unit in which the duration still has a
// non-zero integer part. The comparison is a floor, not a rounding one:
// 999_999_999ns classifies as milliseconds, not seconds.
func Classify(nanos uint64) Granularity {
	switch {
	case nanos/nanosPerSecond > 0:
		return Seconds
	case nanos/nanosPerMillisecond > 0:
		return Milliseconds
	case nanos/nanosPerMicrosecond > 0:
		return Microseconds
	default:
		return Nanoseconds
	}
}

// ValueIn converts a nanosecond count into g's unit.
func ValueIn(g Granularity, nanos uint64) float64 {
	switch g {
	case Seconds:
		return float64(nanos) / float64(nanosPerSecond)
	case Milliseconds:
		return float64(nanos) / float64(nanosPerMillisecond)
	case Microseconds:
		return float64(nanos) / float64(nanosPerMicrosecond)
	default:
		return float64(nanos)
	}
}

// CommonGranularity returns the coarser of the two units. Ratios between two
// durations are computed after converting both into their common unit, so a
// microsecond-scale node is never divided against a second-scale root through
// a very large integer ratio.
func CommonGranularity(g1, g2 Granularity) Granularity {
	if g2 > g1 {
		return g2
	}
	return g1
}

// String returns the unit suffix used in reports.
func (g Granularity) String() string {
	switch g {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	default:
		return "ns"
	}
}

// MarshalJSON encodes the granularity as its unit suffix.
func (g Granularity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + g.String() + `"`), nil
}
