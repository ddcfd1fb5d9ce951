package modem

import (
	"math"
	"testing"
)

func TestConfigRequiredEbN0(t *testing.T) {
	uncoded := Config{Modulation: BPSK, Coding: Uncoded}
	coded := Config{Modulation: BPSK, Coding: LDPCR12}
	if coded.RequiredEbN0DB(DefaultTargetBER) >= uncoded.RequiredEbN0DB(DefaultTargetBER) {
		t.Error("coding gain should lower the requirement")
	}

	conv := Config{Modulation: BPSK, Coding: ConvR12}
	turbo := Config{Modulation: BPSK, Coding: TurboR12}
	if turbo.RequiredEbN0DB(DefaultTargetBER) >= conv.RequiredEbN0DB(DefaultTargetBER) {
		t.Error("the stronger code should need less Eb/N0")
	}

	// Implementation loss shifts the requirement linearly.
	oneDB := Config{Modulation: BPSK, Coding: LDPCR12, ImplementationLossDB: 1}
	threeDB := Config{Modulation: BPSK, Coding: LDPCR12, ImplementationLossDB: 3}
	diff := threeDB.RequiredEbN0DB(DefaultTargetBER) - oneDB.RequiredEbN0DB(DefaultTargetBER)
	if math.Abs(diff-2) > 0.01 {
		t.Errorf("3 dB vs 1 dB loss differ by %g dB, want 2", diff)
	}

	// Uncoded BPSK with 1 dB hardware loss: about 9.6 + 1.
	cfg := Config{Modulation: BPSK, Coding: Uncoded, ImplementationLossDB: 1}
	if got := cfg.RequiredEbN0DB(DefaultTargetBER); math.Abs(got-10.6) > 0.2 {
		t.Errorf("required Eb/N0 = %g dB, want about 10.6", got)
	}
}

func TestConfigDataRate(t *testing.T) {
	cases := []struct {
		name        string
		cfg         Config
		bandwidthHz float64
		wantBps     float64
	}{
		{"BPSK LDPC r1/2 25 kHz", Config{Modulation: BPSK, Coding: LDPCR12}, 25e3, 12500},
		{"QPSK uncoded 10 kHz", Config{Modulation: QPSK, Coding: Uncoded}, 10e3, 20000},
		{"16QAM LDPC r3/4 1 MHz", Config{Modulation: QAM16, Coding: LDPCR34}, 1e6, 3e6},
		{"zero bandwidth", Config{Modulation: BPSK, Coding: Uncoded}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.DataRateBps(tc.bandwidthHz); math.Abs(got-tc.wantBps) > 1e-9 {
				t.Errorf("data rate = %g bps, want %g", got, tc.wantBps)
			}
		})
	}

	cfg := Config{Modulation: QPSK, Coding: LDPCR12}
	if r1, r2 := cfg.DataRateBps(1000), cfg.DataRateBps(2000); math.Abs(r2-2*r1) > 1e-9 {
		t.Errorf("data rate not proportional to bandwidth: %g vs %g", r1, r2)
	}
}

func TestConfigSpectralEfficiency(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"BPSK uncoded", Config{Modulation: BPSK, Coding: Uncoded}, 1.0},
		{"QPSK LDPC r1/2", Config{Modulation: QPSK, Coding: LDPCR12}, 1.0},
		{"16QAM LDPC r7/8", Config{Modulation: QAM16, Coding: LDPCR78}, 3.5},
		{"8PSK LDPC r3/4", Config{Modulation: PSK8, Coding: LDPCR34}, 2.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.SpectralEfficiency(); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("spectral efficiency = %g, want %g", got, tc.want)
			}
		})
	}

	cfg := Config{Modulation: QAM16, Coding: LDPCR34}
	const bw = 50e3
	if got, want := cfg.DataRateBps(bw), cfg.SpectralEfficiency()*bw; math.Abs(got-want) > 1e-9 {
		t.Errorf("data rate %g disagrees with efficiency x bandwidth %g", got, want)
	}
}
