package atmosphere

import (
	"math"
	"testing"
)

func TestOxygenAttenuationByBand(t *testing.T) {
	if got := OxygenAttenuation(1.0, 1013.25, 288.15); got <= 0 || got >= 0.01 {
		t.Errorf("1 GHz oxygen = %g dB/km, want small positive", got)
	}
	if got := OxygenAttenuation(10.0, 1013.25, 288.15); got <= 0.001 || got >= 0.02 {
		t.Errorf("10 GHz oxygen = %g dB/km, want small but non-negligible", got)
	}
	// The 60 GHz absorption complex is over 10 dB/km at sea level.
	if got := OxygenAttenuation(60.0, 1013.25, 288.15); got <= 10 {
		t.Errorf("60 GHz oxygen = %g dB/km, want >10", got)
	}
	for _, f := range []float64{57, 59, 60, 61, 63} {
		if got := OxygenAttenuation(f, 1013.25, 288.15); got <= 1 {
			t.Errorf("%g GHz oxygen = %g dB/km, want >1 across the complex", f, got)
		}
	}
	// Secondary line near 118.75 GHz.
	if OxygenAttenuation(118.75, 1013.25, 288.15) <= OxygenAttenuation(100, 1013.25, 288.15) {
		t.Error("expected a peak at the 118.75 GHz line")
	}
	for _, f := range []float64{0.5, 1, 5, 22, 40, 60, 100, 200} {
		if OxygenAttenuation(f, 1013.25, 288.15) < 0 {
			t.Errorf("negative oxygen attenuation at %g GHz", f)
		}
	}
}

func TestOxygenAttenuationScalesWithConditions(t *testing.T) {
	if OxygenAttenuation(10, 1013.25, 288.15) <= OxygenAttenuation(10, 700, 288.15) {
		t.Error("higher pressure should absorb more")
	}
	if OxygenAttenuation(10, 1013.25, 250) <= OxygenAttenuation(10, 1013.25, 310) {
		t.Error("colder air should absorb more")
	}
}

func TestWaterVaporAttenuation(t *testing.T) {
	// Resonance at 22.235 GHz.
	peak := WaterVaporAttenuation(22.235, 7.5)
	if peak <= WaterVaporAttenuation(15, 7.5) || peak <= WaterVaporAttenuation(30, 7.5) {
		t.Error("expected a resonance at 22.235 GHz")
	}
	if WaterVaporAttenuation(183.31, 7.5) <= WaterVaporAttenuation(150, 7.5) {
		t.Error("expected a resonance at 183.31 GHz")
	}
	if WaterVaporAttenuation(22, 15) <= WaterVaporAttenuation(22, 3) {
		t.Error("more vapor should absorb more")
	}
	if got := WaterVaporAttenuation(22, 0); got != 0 {
		t.Errorf("dry atmosphere = %g dB/km, want 0", got)
	}
	for _, f := range []float64{1, 10, 22, 50, 183, 325} {
		if WaterVaporAttenuation(f, 7.5) < 0 {
			t.Errorf("negative water-vapor attenuation at %g GHz", f)
		}
	}
}

func TestGaseousLossSlantPath(t *testing.T) {
	if got := GaseousLossDB(12, 30, 1013.25, 288.15, 7.5); got <= 0 {
		t.Errorf("slant loss = %g dB, want positive", got)
	}
	if GaseousLossDB(12, 10, 1013.25, 288.15, 7.5) <= GaseousLossDB(12, 45, 1013.25, 288.15, 7.5) {
		t.Error("lower elevation should cost more")
	}
	// Below 5 degrees the path is evaluated as a 5 degree path.
	if GaseousLossDB(12, 1, 1013.25, 288.15, 7.5) != GaseousLossDB(12, 5, 1013.25, 288.15, 7.5) {
		t.Error("elevations under the floor should clamp to 5 degrees")
	}
	// A 60 GHz slant path is essentially opaque.
	if got := GaseousLossDB(60, 30, 1013.25, 288.15, 7.5); got <= 50 {
		t.Errorf("60 GHz slant loss = %g dB, want >50", got)
	}
}

func TestGaseousLossZenithEqualsColumn(t *testing.T) {
	const freq = 22.0
	got := GaseousLossDB(freq, 90, 1013.25, 288.15, 7.5)
	want := OxygenAttenuation(freq, 1013.25, 288.15)*dryAirHeightKm +
		WaterVaporAttenuation(freq, 7.5)*waterVaporHeightKm
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("zenith loss = %g dB, want column integral %g", got, want)
	}
}
