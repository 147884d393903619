package telemetry

import (
	"math"
	"testing"
)

func TestComputeHitStats(t *testing.T) {
	tests := []struct {
		name string
		hits []float64
		want []float64 // mean, std, p50, p90, max
	}{
		{"empty", nil, []float64{0, 0, 0, 0, 0}},
		{"single rally", []float64{4}, []float64{4, 0, 4, 4, 4}},
		{"two rallies", []float64{2, 6}, []float64{4, math.Sqrt(8), 2, 6, 6}},
		{"unsorted", []float64{5, 1, 3, 2, 4}, []float64{3, math.Sqrt(2.5), 3, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90, maxHits := ComputeHitStats(tt.hits)
			got := []float64{mean, std, p50, p90, maxHits}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestComputeHitStatsKeepsInput(t *testing.T) {
	hits := []float64{3, 1, 2}
	ComputeHitStats(hits)
	if hits[0] != 3 || hits[1] != 1 || hits[2] != 2 {
		t.Errorf("expected input untouched, got %v", hits)
	}
}

func TestComputeMultiplierStats(t *testing.T) {
	mean, peak := ComputeMultiplierStats([]float64{1, 1.2, 1.4})
	if math.Abs(mean-1.2) > 1e-9 || peak != 1.4 {
		t.Errorf("expected mean 1.2 max 1.4, got %v %v", mean, peak)
	}

	mean, peak = ComputeMultiplierStats(nil)
	if mean != 0 || peak != 0 {
		t.Errorf("expected zeros, got %v %v", mean, peak)
	}
}
