// modem/modulation.go
package modem

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/satlink-simulator/core"
)

// Modulation describes a keying scheme and its AWGN error performance.
// Use the package variables or ModulationByName; the zero value has no BER
// curve.
type Modulation struct {
	Name               string
	BitsPerSymbol      int
	SpectralEfficiency float64 // bits/s/Hz before coding

	ber func(ebN0 float64) float64 // linear Eb/N0 in, BER out
}

var (
	// BPSK and QPSK share the same per-bit performance.
	BPSK = Modulation{Name: "BPSK", BitsPerSymbol: 1, SpectralEfficiency: 1, ber: berPSK2}
	QPSK = Modulation{Name: "QPSK", BitsPerSymbol: 2, SpectralEfficiency: 2, ber: berPSK2}

	PSK8 = Modulation{Name: "8PSK", BitsPerSymbol: 3, SpectralEfficiency: 3, ber: func(x float64) float64 {
		return (2.0 / 3.0) * math.Erfc(math.Sqrt(3*x)*math.Sin(math.Pi/8))
	}}

	QAM16 = Modulation{Name: "16QAM", BitsPerSymbol: 4, SpectralEfficiency: 4, ber: func(x float64) float64 {
		return (3.0 / 8.0) * math.Erfc(math.Sqrt(2*x/5))
	}}
)

func berPSK2(x float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(x))
}

// ModulationByName resolves the mission-file spelling of a modulation.
func ModulationByName(name string) (Modulation, error) {
	switch name {
	case "BPSK":
		return BPSK, nil
	case "QPSK":
		return QPSK, nil
	case "8PSK":
		return PSK8, nil
	case "16QAM":
		return QAM16, nil
	}
	return Modulation{}, fmt.Errorf("%w: unknown modulation %q (known: BPSK, QPSK, 8PSK, 16QAM)",
		core.ErrConfiguration, name)
}

// BER returns the bit error rate at the given Eb/N0 in dB. A modulation
// without a curve reports NaN.
func (m Modulation) BER(ebN0DB float64) float64 {
	if m.ber == nil {
		return math.NaN()
	}
	return m.ber(math.Pow(10, ebN0DB/10))
}

// RequiredEbN0DB finds the Eb/N0 in dB that meets targetBER by bisecting
// the monotone BER curve over [-5, 30] dB.
func (m Modulation) RequiredEbN0DB(targetBER float64) float64 {
	low, high := -5.0, 30.0
	for i := 0; i < 100; i++ {
		mid := (low + high) / 2
		if m.BER(mid) > targetBER {
			low = mid
		} else {
			high = mid
		}
	}
	return (low + high) / 2
}
