package rf

import (
	"math"
	"testing"
)

func TestSystemNoiseTempFriis(t *testing.T) {
	// No subsequent stages: plain sum.
	if got := SystemNoiseTempK(50, 75, 30, 0); math.Abs(got-125) > 0.1 {
		t.Errorf("T_sys = %g K, want 125", got)
	}
	// 30 dB LNA gain divides a 1000 K tail down to 1 K.
	if got := SystemNoiseTempK(50, 75, 30, 1000); math.Abs(got-126) > 0.1 {
		t.Errorf("T_sys with tail = %g K, want 126", got)
	}
	// 0 dB gain passes the tail through untouched.
	if got := SystemNoiseTempK(50, 75, 0, 100); math.Abs(got-225) > 0.1 {
		t.Errorf("T_sys at unity gain = %g K, want 225", got)
	}
	// High gain makes the tail negligible.
	withTail := SystemNoiseTempK(50, 75, 40, 5000)
	without := SystemNoiseTempK(50, 75, 40, 0)
	if math.Abs(withTail-without) > 1 {
		t.Errorf("40 dB gain should suppress the tail: %g vs %g", withTail, without)
	}
}

func TestNoiseFigureToTemp(t *testing.T) {
	if got := NoiseFigureToTempK(0); math.Abs(got) > 0.01 {
		t.Errorf("NF 0 dB = %g K, want 0", got)
	}
	if got := NoiseFigureToTempK(1); math.Abs(got-75.1) > 1 {
		t.Errorf("NF 1 dB = %g K, want about 75", got)
	}
	if got := NoiseFigureToTempK(3); math.Abs(got-288.6) > 1 {
		t.Errorf("NF 3 dB = %g K, want about 289", got)
	}
	prev := -1.0
	for _, nf := range []float64{0.5, 1, 2, 3, 6} {
		if got := NoiseFigureToTempK(nf); got <= prev {
			t.Fatalf("noise temperature not increasing at NF %g dB", nf)
		} else {
			prev = got
		}
	}
}

func TestFigureOfMerit(t *testing.T) {
	if got := FigureOfMeritDBK(40, 100); math.Abs(got-20) > 0.01 {
		t.Errorf("G/T(40 dBi, 100 K) = %g, want 20", got)
	}
	// DSN-class 70 m dish at X-band.
	if got := FigureOfMeritDBK(74, 20); math.Abs(got-60.99) > 0.1 {
		t.Errorf("G/T(74 dBi, 20 K) = %g, want about 61", got)
	}
	if FigureOfMeritDBK(40, 200) >= FigureOfMeritDBK(40, 100) {
		t.Error("G/T must degrade with noise temperature")
	}
}

func TestAntennaNoiseTempByBand(t *testing.T) {
	if got := AntennaNoiseTempK(150e6, 45); got <= 100 {
		t.Errorf("VHF antenna noise = %g K, want galactic-dominated >100", got)
	}
	if got := AntennaNoiseTempK(2.2e9, 45); got <= 5 || got >= 100 {
		t.Errorf("S-band antenna noise = %g K, want moderate", got)
	}
	if got := AntennaNoiseTempK(8.2e9, 45); got <= 3 || got >= 50 {
		t.Errorf("X-band antenna noise = %g K, want low", got)
	}
	// Ground spillover shrinks toward zenith.
	if AntennaNoiseTempK(2e9, 10) <= AntennaNoiseTempK(2e9, 80) {
		t.Error("antenna noise should drop with elevation")
	}
	for _, freq := range []float64{150e6, 437e6, 2.2e9, 8.2e9, 26e9} {
		for _, el := range []float64{5, 30, 60, 90} {
			if AntennaNoiseTempK(freq, el) <= 0 {
				t.Fatalf("antenna noise not positive at %g Hz, %g deg", freq, el)
			}
		}
	}
}

func TestRainNoiseTemp(t *testing.T) {
	if got := RainNoiseTempK(0, 275); math.Abs(got) > 0.01 {
		t.Errorf("no rain = %g K, want 0", got)
	}
	if got := RainNoiseTempK(10, 275); math.Abs(got-275*0.9) > 1 {
		t.Errorf("10 dB rain = %g K, want about %g", got, 275*0.9)
	}
	if got := RainNoiseTempK(3, 275); math.Abs(got-137.5) > 1.5 {
		t.Errorf("3 dB rain = %g K, want about half the medium temperature", got)
	}
	for _, a := range []float64{0.1, 1, 5, 20, 100} {
		got := RainNoiseTempK(a, 275)
		if got < 0 || got > 275 {
			t.Fatalf("rain noise %g K at %g dB escapes [0, medium]", got, a)
		}
	}
}
