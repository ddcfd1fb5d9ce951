package antenna

import (
	"math"
	"testing"
)

func TestDipoleAndMonopole(t *testing.T) {
	var d Dipole
	if got := d.GainDB(0); math.Abs(got-2.15) > 1e-12 {
		t.Errorf("dipole gain = %g dBi, want 2.15", got)
	}
	if d.GainDB(100e6) != d.GainDB(1e9) {
		t.Error("dipole gain should not depend on frequency")
	}
	if got := d.BeamwidthDeg(0); got != 78.0 {
		t.Errorf("dipole beamwidth = %g deg, want 78", got)
	}

	var m Monopole
	if got := m.GainDB(0); math.Abs(got-5.15) > 1e-12 {
		t.Errorf("monopole gain = %g dBi, want 5.15", got)
	}
	if m.GainDB(0) <= d.GainDB(0) {
		t.Error("monopole over ground plane should beat the dipole")
	}
}

func TestHelix(t *testing.T) {
	// 10-turn UHF helix with circumference near lambda, spacing near
	// lambda/4.
	h := Helix{Turns: 10, CircumferenceM: 0.687, SpacingM: 0.172}
	if got := h.GainDB(437e6); got <= 11 || got >= 16 {
		t.Errorf("UHF helix gain = %g dBi, want low teens", got)
	}
	prev := math.Inf(-1)
	for _, n := range []int{5, 10, 15, 20} {
		g := Helix{Turns: n, CircumferenceM: 0.687, SpacingM: 0.172}.GainDB(437e6)
		if g <= prev {
			t.Fatalf("gain not increasing at %d turns", n)
		}
		prev = g
	}
	if h.BeamwidthDeg(437e6) <= 0 {
		t.Error("beamwidth should be positive")
	}
}

func TestPatchArray(t *testing.T) {
	if got := (Patch{ElementGainDBi: 6, Elements: 1, Rows: 1, Cols: 1}).GainDB(0); math.Abs(got-6) > 0.01 {
		t.Errorf("single patch = %g dBi, want 6", got)
	}
	if got := (Patch{ElementGainDBi: 6, Elements: 4, Rows: 2, Cols: 2}).GainDB(0); math.Abs(got-12) > 0.1 {
		t.Errorf("2x2 array = %g dBi, want 12", got)
	}
	if got := (Patch{ElementGainDBi: 6, Elements: 16, Rows: 4, Cols: 4}).GainDB(0); math.Abs(got-18) > 0.1 {
		t.Errorf("4x4 array = %g dBi, want 18", got)
	}
	prev := math.Inf(-1)
	for _, n := range []int{1, 2, 4, 8, 16} {
		g := Patch{ElementGainDBi: 6, Elements: n}.GainDB(0)
		if g <= prev {
			t.Fatalf("gain not increasing at %d elements", n)
		}
		prev = g
	}
	bw22 := Patch{ElementGainDBi: 6, Elements: 4, Rows: 2, Cols: 2}.BeamwidthDeg(0)
	bw44 := Patch{ElementGainDBi: 6, Elements: 16, Rows: 4, Cols: 4}.BeamwidthDeg(0)
	if bw22 <= bw44 {
		t.Errorf("larger array should be narrower: %g vs %g", bw22, bw44)
	}
	if got := (Patch{ElementGainDBi: 6, Elements: 1}).BeamwidthDeg(0); got != 70.0 {
		t.Errorf("unspecified layout beamwidth = %g deg, want the single-patch 70", got)
	}
}
