// atmosphere/model.go

// Package atmosphere implements simplified ITU-R propagation impairment
// models: gaseous absorption (P.676), rain attenuation (P.618/838/839),
// cloud attenuation (P.840) and ionospheric scintillation (P.531).
//
// The package-level functions are pure and take frequency in GHz, the unit
// the recommendations are written in. They assume a positive frequency;
// range checking happens once, in NewModel and Model.TotalLossDB, which is
// the surface the simulation engine drives.
package atmosphere

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/satlink-simulator/core"
)

// Conditions holds the ambient inputs the loss models depend on. The zero
// value is not useful; start from DefaultConditions and override.
type Conditions struct {
	// Surface weather for the gaseous model.
	PressureHPa  float64
	TemperatureK float64
	VaporGM3     float64

	// Rain model inputs. RainRateMMH is the rate exceeded for 0.01% of an
	// average year; zero disables the rain term entirely.
	RainRateMMH  float64
	LatitudeDeg  float64
	StationAltKm float64
	// TiltDeg is the polarization tilt from horizontal: 0 H, 90 V,
	// 45 circular.
	TiltDeg float64

	// Cloud model inputs. WaterKgM2 is the columnar liquid-water content;
	// zero disables the cloud term.
	WaterKgM2  float64
	CloudTempK float64

	// Scintillation model inputs, used only when IncludeScintillation is
	// set.
	IncludeScintillation bool
	GeomagLatDeg         float64
	SolarFlux            float64
	LocalTimeH           float64
	ScintillationPercent float64
}

// DefaultConditions returns a clear-sky mid-latitude atmosphere: standard
// sea-level pressure and temperature, moderate humidity, no rain, no cloud,
// scintillation off.
func DefaultConditions() Conditions {
	return Conditions{
		PressureHPa:          1013.25,
		TemperatureK:         288.15,
		VaporGM3:             7.5,
		RainRateMMH:          0,
		LatitudeDeg:          45,
		StationAltKm:         0,
		TiltDeg:              45,
		WaterKgM2:            0,
		CloudTempK:           273.15,
		IncludeScintillation: false,
		GeomagLatDeg:         45,
		SolarFlux:            120,
		LocalTimeH:           14,
		ScintillationPercent: 1.0,
	}
}

func (c Conditions) validate() error {
	if c.PressureHPa <= 0 {
		return fmt.Errorf("%w: pressure must be positive, got %g hPa", core.ErrConfiguration, c.PressureHPa)
	}
	if c.TemperatureK <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g K", core.ErrConfiguration, c.TemperatureK)
	}
	if c.VaporGM3 < 0 {
		return fmt.Errorf("%w: water-vapor density must be >= 0, got %g g/m^3", core.ErrConfiguration, c.VaporGM3)
	}
	if c.RainRateMMH < 0 {
		return fmt.Errorf("%w: rain rate must be >= 0, got %g mm/h", core.ErrConfiguration, c.RainRateMMH)
	}
	if c.LatitudeDeg < -90 || c.LatitudeDeg > 90 {
		return fmt.Errorf("%w: latitude must be within [-90, 90] degrees, got %g", core.ErrConfiguration, c.LatitudeDeg)
	}
	if c.WaterKgM2 < 0 {
		return fmt.Errorf("%w: liquid-water content must be >= 0, got %g kg/m^2", core.ErrConfiguration, c.WaterKgM2)
	}
	if c.CloudTempK <= 0 {
		return fmt.Errorf("%w: cloud temperature must be positive, got %g K", core.ErrConfiguration, c.CloudTempK)
	}
	if c.IncludeScintillation {
		if c.ScintillationPercent <= 0 || c.ScintillationPercent >= 100 {
			return fmt.Errorf("%w: scintillation percentage must be inside (0, 100), got %g", core.ErrConfiguration, c.ScintillationPercent)
		}
		if c.SolarFlux < 0 {
			return fmt.Errorf("%w: solar flux index must be >= 0, got %g", core.ErrConfiguration, c.SolarFlux)
		}
	}
	return nil
}

// Losses is the per-component breakdown of one atmospheric evaluation, all
// in dB.
type Losses struct {
	GaseousDB       float64
	RainDB          float64
	CloudDB         float64
	ScintillationDB float64
}

// TotalDB is the sum of all loss components.
func (l Losses) TotalDB() float64 {
	return l.GaseousDB + l.RainDB + l.CloudDB + l.ScintillationDB
}

// Model evaluates the combined atmospheric loss for fixed ambient
// conditions. It satisfies the simulation engine's atmosphere collaborator
// and is safe for concurrent use.
type Model struct {
	cond Conditions
}

// NewModel validates the conditions and returns a ready model.
func NewModel(cond Conditions) (*Model, error) {
	if err := cond.validate(); err != nil {
		return nil, err
	}
	return &Model{cond: cond}, nil
}

// Conditions returns the ambient inputs the model was built with.
func (m *Model) Conditions() Conditions {
	return m.cond
}

// Losses computes the per-component attenuation at the given frequency and
// elevation. Elevations below 5 degrees are treated as 5 degree paths.
func (m *Model) Losses(freqHz, elevationDeg float64) (Losses, error) {
	if freqHz <= 0 || math.IsNaN(freqHz) {
		return Losses{}, fmt.Errorf("%w: frequency must be positive, got %g Hz", core.ErrConfiguration, freqHz)
	}
	if math.IsNaN(elevationDeg) {
		return Losses{}, fmt.Errorf("%w: elevation is NaN", core.ErrConfiguration)
	}
	freqGHz := freqHz / 1e9
	c := m.cond

	out := Losses{
		GaseousDB: GaseousLossDB(freqGHz, elevationDeg, c.PressureHPa, c.TemperatureK, c.VaporGM3),
		RainDB:    RainLossDB(freqGHz, elevationDeg, c.RainRateMMH, c.LatitudeDeg, c.StationAltKm, c.TiltDeg),
		CloudDB:   CloudLossDB(freqGHz, elevationDeg, c.WaterKgM2, c.CloudTempK),
	}
	if c.IncludeScintillation {
		out.ScintillationDB = ScintillationFadeDB(freqGHz, elevationDeg,
			c.GeomagLatDeg, c.SolarFlux, c.LocalTimeH, c.ScintillationPercent)
	}
	return out, nil
}

// TotalLossDB returns the summed attenuation in dB.
func (m *Model) TotalLossDB(freqHz, elevationDeg float64) (float64, error) {
	losses, err := m.Losses(freqHz, elevationDeg)
	if err != nil {
		return 0, err
	}
	return losses.TotalDB(), nil
}
