package modem

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/satlink-simulator/core"
)

func TestPrebuiltModulations(t *testing.T) {
	cases := []struct {
		mod  Modulation
		bits int
		eff  float64
	}{
		{BPSK, 1, 1},
		{QPSK, 2, 2},
		{PSK8, 3, 3},
		{QAM16, 4, 4},
	}
	for _, tc := range cases {
		if tc.mod.BitsPerSymbol != tc.bits {
			t.Errorf("%s bits/symbol = %d, want %d", tc.mod.Name, tc.mod.BitsPerSymbol, tc.bits)
		}
		if tc.mod.SpectralEfficiency != tc.eff {
			t.Errorf("%s spectral efficiency = %g, want %g", tc.mod.Name, tc.mod.SpectralEfficiency, tc.eff)
		}
	}
}

func TestModulationByName(t *testing.T) {
	for _, name := range []string{"BPSK", "QPSK", "8PSK", "16QAM"} {
		m, err := ModulationByName(name)
		if err != nil {
			t.Fatalf("ModulationByName(%q): %v", name, err)
		}
		if m.Name != name {
			t.Errorf("resolved %q, want %q", m.Name, name)
		}
	}
	if _, err := ModulationByName("64QAM"); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("unknown modulation error = %v, want ErrConfiguration", err)
	}
}

func TestBERKnownPoints(t *testing.T) {
	// 0.5*erfc(sqrt(10)) and friends.
	if got := BPSK.BER(10); math.Abs(got-3.872e-6) > 3.872e-6*0.01 {
		t.Errorf("BPSK BER(10 dB) = %g, want 3.87e-6", got)
	}
	if got := BPSK.BER(0); math.Abs(got-0.07865) > 0.07865*0.001 {
		t.Errorf("BPSK BER(0 dB) = %g, want 0.0786", got)
	}
	if got := PSK8.BER(10); math.Abs(got-2.023e-3) > 2.023e-3*0.01 {
		t.Errorf("8PSK BER(10 dB) = %g, want 2.02e-3", got)
	}
	if got := QAM16.BER(10); math.Abs(got-1.754e-3) > 1.754e-3*0.01 {
		t.Errorf("16QAM BER(10 dB) = %g, want 1.75e-3", got)
	}
}

func TestBERCurveShape(t *testing.T) {
	// QPSK carries two bits per symbol but the per-bit curve matches BPSK.
	for _, db := range []float64{0, 5, 10, 15} {
		if QPSK.BER(db) != BPSK.BER(db) {
			t.Errorf("QPSK BER(%g) = %g differs from BPSK %g", db, QPSK.BER(db), BPSK.BER(db))
		}
	}
	for _, db := range []float64{5, 8, 12} {
		if PSK8.BER(db) <= QPSK.BER(db) {
			t.Errorf("8PSK should err more than QPSK at %g dB", db)
		}
	}
	for _, m := range []Modulation{BPSK, QPSK, PSK8, QAM16} {
		prev := math.Inf(1)
		for _, db := range []float64{0, 4, 8, 12, 16} {
			ber := m.BER(db)
			if ber <= 0 {
				t.Fatalf("%s BER(%g dB) = %g, want positive", m.Name, db, ber)
			}
			if ber >= prev {
				t.Fatalf("%s BER not falling at %g dB", m.Name, db)
			}
			prev = ber
		}
	}
}

func TestBERZeroValueModulation(t *testing.T) {
	var m Modulation
	if got := m.BER(10); !math.IsNaN(got) {
		t.Errorf("zero-value BER = %g, want NaN", got)
	}
}

func TestRequiredEbN0(t *testing.T) {
	if got := BPSK.RequiredEbN0DB(DefaultTargetBER); math.Abs(got-9.6) > 0.1 {
		t.Errorf("BPSK required Eb/N0 = %g dB, want about 9.6", got)
	}

	bpskReq := BPSK.RequiredEbN0DB(1e-5)
	qpskReq := QPSK.RequiredEbN0DB(1e-5)
	psk8Req := PSK8.RequiredEbN0DB(1e-5)
	qam16Req := QAM16.RequiredEbN0DB(1e-5)
	if math.Abs(bpskReq-qpskReq) > 0.01 {
		t.Errorf("BPSK %g and QPSK %g requirements should match", bpskReq, qpskReq)
	}
	if !(qam16Req > psk8Req && psk8Req > qpskReq) {
		t.Errorf("higher-order schemes should need more Eb/N0: %g, %g, %g", qpskReq, psk8Req, qam16Req)
	}

	req4 := BPSK.RequiredEbN0DB(1e-4)
	req5 := BPSK.RequiredEbN0DB(1e-5)
	req6 := BPSK.RequiredEbN0DB(1e-6)
	if !(req6 > req5 && req5 > req4) {
		t.Errorf("tighter BER targets should need more Eb/N0: %g, %g, %g", req4, req5, req6)
	}
}
