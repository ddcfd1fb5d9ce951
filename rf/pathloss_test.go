package rf

import (
	"math"
	"testing"
)

func TestFreeSpacePathLossKnownValues(t *testing.T) {
	// 1 GHz at 1000 km: 32.45 + 60 + 60 dB.
	if got := FreeSpacePathLossDB(1000e3, 1e9); math.Abs(got-152.44) > 0.2 {
		t.Errorf("FSPL(1000 km, 1 GHz) = %g dB, want about 152.44", got)
	}
	// GEO at S-band.
	if got := FreeSpacePathLossDB(36000e3, 2e9); math.Abs(got-189.6) > 0.3 {
		t.Errorf("FSPL(36000 km, 2 GHz) = %g dB, want about 189.6", got)
	}
}

func TestFreeSpacePathLossScaling(t *testing.T) {
	base := FreeSpacePathLossDB(1000e3, 1e9)
	if d := FreeSpacePathLossDB(2000e3, 1e9) - base; math.Abs(d-6.02) > 0.1 {
		t.Errorf("doubling distance added %g dB, want about 6.02", d)
	}
	if d := FreeSpacePathLossDB(1000e3, 2e9) - base; math.Abs(d-6.02) > 0.1 {
		t.Errorf("doubling frequency added %g dB, want about 6.02", d)
	}

	distances := []float64{100e3, 500e3, 1000e3, 5000e3}
	for i := 1; i < len(distances); i++ {
		if FreeSpacePathLossDB(distances[i], 1e9) <= FreeSpacePathLossDB(distances[i-1], 1e9) {
			t.Fatalf("FSPL not monotonic in distance at %g m", distances[i])
		}
	}
}

func TestSlantRangeGeometry(t *testing.T) {
	const alt = 500e3

	// Zenith reduces to the altitude.
	if got := SlantRangeM(alt, 90); math.Abs(got-alt) > 1e-6*alt {
		t.Errorf("SlantRangeM(500 km, 90) = %g, want the altitude", got)
	}

	elevations := []float64{5, 15, 30, 45, 60, 75, 90}
	prev := math.Inf(1)
	for _, el := range elevations {
		sr := SlantRangeM(alt, el)
		if sr >= prev {
			t.Fatalf("slant range not decreasing with elevation at %g deg", el)
		}
		if el < 90 && sr <= alt {
			t.Errorf("SlantRangeM(500 km, %g) = %g, want above the altitude", el, sr)
		}
		prev = sr
	}

	// LEO near the horizon and at mid elevation.
	if sr := SlantRangeM(alt, 5); sr < 1800e3 || sr > 2300e3 {
		t.Errorf("SlantRangeM(500 km, 5) = %g m, outside the expected band", sr)
	}
	if sr := SlantRangeM(alt, 45); sr < 580e3 || sr > 720e3 {
		t.Errorf("SlantRangeM(500 km, 45) = %g m, outside the expected band", sr)
	}

	// GEO near the horizon.
	if sr := SlantRangeM(35786e3, 5); sr < 40000e3 || sr > 42000e3 {
		t.Errorf("SlantRangeM(GEO, 5) = %g m, outside the expected band", sr)
	}
}
