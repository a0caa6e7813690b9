package calltree

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		nanos uint64
		want  Granularity
	}{
		{"zero", 0, Nanoseconds},
		{"below microsecond", 999, Nanoseconds},
		{"exact microsecond", 1_000, Microseconds},
		{"below millisecond", 999_999, Microseconds},
		{"exact millisecond", 1_000_000, Milliseconds},
		{"below second", 999_999_999, Milliseconds},
		{"exact second", 1_000_000_000, Seconds},
		{"many seconds", 90_000_000_000, Seconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.nanos); got != tt.want {
				t.Fatalf("wanted: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestValueIn(t *testing.T) {
	tests := []struct {
		name        string
		granularity Granularity
		nanos       uint64
		want        float64
	}{
		{"nanoseconds unchanged", Nanoseconds, 512, 512},
		{"microseconds", Microseconds, 1_500, 1.5},
		{"milliseconds", Milliseconds, 1_500_000, 1.5},
		{"seconds", Seconds, 1_500_000_000, 1.5},
		{"sub-unit fraction", Seconds, 300_000_000, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueIn(tt.granularity, tt.nanos); got != tt.want {
				t.Fatalf("wanted: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestCommonGranularity(t *testing.T) {
	tests := []struct {
		name   string
		g1, g2 Granularity
		want   Granularity
	}{
		{"equal", Milliseconds, Milliseconds, Milliseconds},
		{"coarser first", Seconds, Nanoseconds, Seconds},
		{"coarser second", Microseconds, Milliseconds, Milliseconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommonGranularity(tt.g1, tt.g2); got != tt.want {
				t.Fatalf("wanted: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestGranularitySuffix(t *testing.T) {
	suffixes := map[Granularity]string{
		Nanoseconds:  "ns",
		Microseconds: "us",
		Milliseconds: "ms",
		Seconds:      "s",
	}
	for g, want := range suffixes {
		if got := g.String(); got != want {
			t.Fatalf("wanted: %v, got: %v", want, got)
		}
	}
}
