// mission/config.go

// Package mission turns declarative mission files into runnable pass
// simulations. A Config names the orbit, both ends of the link and the
// simulation span; Build resolves its catalog references and wires the
// propagator, station frame, atmosphere model and budget evaluator into a
// core.PassSimulationEngine.
package mission

import (
	"bytes"
	"fmt"
	"math"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/satlink-simulator/core"
)

// Config mirrors the mission file schema. Load and Parse fill the
// defaults; a zero Config does not validate.
type Config struct {
	Name        string  `mapstructure:"name"`
	FrequencyHz float64 `mapstructure:"frequency_hz"`

	Orbit       OrbitConfig       `mapstructure:"orbit"`
	Transmitter TransmitterConfig `mapstructure:"transmitter"`
	Receiver    ReceiverConfig    `mapstructure:"receiver"`
	Modem       ModemConfig       `mapstructure:"modem"`
	Atmosphere  AtmosphereConfig  `mapstructure:"atmosphere"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
}

// OrbitConfig fixes the circular orbit.
type OrbitConfig struct {
	AltitudeKm     float64 `mapstructure:"altitude_km"`
	InclinationDeg float64 `mapstructure:"inclination_deg"`
	RAANDeg        float64 `mapstructure:"raan_deg"`
	J2             bool    `mapstructure:"j2"`
}

// TransmitterConfig describes the space end. Transceiver and Antenna name
// catalog datasheets; when set, the datasheet power and antenna gain
// override the inline values.
type TransmitterConfig struct {
	Transceiver      string  `mapstructure:"transceiver"`
	PowerDBm         float64 `mapstructure:"power_dbm"`
	Antenna          string  `mapstructure:"antenna"`
	AntennaGainDBi   float64 `mapstructure:"antenna_gain_dbi"`
	FeedLossDB       float64 `mapstructure:"feed_loss_db"`
	PointingErrorDeg float64 `mapstructure:"pointing_error_deg"`
}

// ReceiverConfig describes the ground end. GroundStation names a catalog
// datasheet; its antenna gain and noise temperature override the inline
// values when the datasheet carries them.
type ReceiverConfig struct {
	GroundStation    string  `mapstructure:"ground_station"`
	AntennaGainDBi   float64 `mapstructure:"antenna_gain_dbi"`
	SystemNoiseTempK float64 `mapstructure:"system_noise_temp_k"`
	LNANoiseFigureDB float64 `mapstructure:"lna_noise_figure_db"`
	FeedLossDB       float64 `mapstructure:"feed_loss_db"`
	PointingErrorDeg float64 `mapstructure:"pointing_error_deg"`
}

// ModemConfig names the modulation and coding schemes and the payload data
// rate.
type ModemConfig struct {
	Modulation           string  `mapstructure:"modulation"`
	Coding               string  `mapstructure:"coding"`
	ImplementationLossDB float64 `mapstructure:"implementation_loss_db"`
	DataRateBps          float64 `mapstructure:"data_rate_bps"`
}

// AtmosphereConfig carries the propagation-impairment inputs. LatitudeDeg
// doubles as the site latitude when no ground station is named.
type AtmosphereConfig struct {
	RainRate001MmH         float64 `mapstructure:"rain_rate_001_mm_h"`
	LatitudeDeg            float64 `mapstructure:"latitude_deg"`
	LiquidWaterContentKgM2 float64 `mapstructure:"liquid_water_content_kg_m2"`
	IncludeScintillation   bool    `mapstructure:"include_scintillation"`
}

// SimulationConfig sets the span and the two time steps: ContactDtS drives
// the coarse visibility scan, DtS the in-pass resampling. Workers above 1
// evaluates windows in parallel; the result is identical either way.
type SimulationConfig struct {
	DurationOrbits float64 `mapstructure:"duration_orbits"`
	DtS            float64 `mapstructure:"dt_s"`
	ContactDtS     float64 `mapstructure:"contact_dt_s"`
	Workers        int     `mapstructure:"workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("orbit.raan_deg", 0.0)
	v.SetDefault("orbit.j2", true)

	v.SetDefault("transmitter.power_dbm", 33.0)
	v.SetDefault("transmitter.antenna_gain_dbi", 0.0)
	v.SetDefault("transmitter.feed_loss_db", 0.0)
	v.SetDefault("transmitter.pointing_error_deg", 0.0)

	v.SetDefault("receiver.antenna_gain_dbi", 0.0)
	v.SetDefault("receiver.system_noise_temp_k", 150.0)
	v.SetDefault("receiver.lna_noise_figure_db", 1.0)
	v.SetDefault("receiver.feed_loss_db", 0.0)
	v.SetDefault("receiver.pointing_error_deg", 0.0)

	v.SetDefault("modem.modulation", "BPSK")
	v.SetDefault("modem.coding", "uncoded")
	v.SetDefault("modem.implementation_loss_db", 1.0)
	v.SetDefault("modem.data_rate_bps", 9600.0)

	v.SetDefault("atmosphere.rain_rate_001_mm_h", 0.0)
	v.SetDefault("atmosphere.latitude_deg", 45.0)
	v.SetDefault("atmosphere.liquid_water_content_kg_m2", 0.0)
	v.SetDefault("atmosphere.include_scintillation", false)

	v.SetDefault("simulation.duration_orbits", 24.0)
	v.SetDefault("simulation.dt_s", 1.0)
	v.SetDefault("simulation.contact_dt_s", 10.0)
	v.SetDefault("simulation.workers", 0)
}

// Load reads a mission file. The format follows the file extension; YAML,
// TOML and JSON all work.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("mission file %s: %w", path, err)
	}
	return finish(v)
}

// Parse reads a mission definition from raw YAML, the format the catalog's
// bundled presets use.
func Parse(raw []byte) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("mission definition: %w", err)
	}
	return finish(v)
}

func finish(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("mission definition: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate range-checks every field, naming offenders by their path in the
// mission file.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", core.ErrConfiguration)
	}
	if c.FrequencyHz <= 0 || math.IsNaN(c.FrequencyHz) {
		return fmt.Errorf("%w: frequency_hz must be positive, got %g", core.ErrConfiguration, c.FrequencyHz)
	}
	if c.Orbit.AltitudeKm <= 0 || math.IsNaN(c.Orbit.AltitudeKm) {
		return fmt.Errorf("%w: orbit.altitude_km must be positive, got %g", core.ErrConfiguration, c.Orbit.AltitudeKm)
	}
	if c.Orbit.InclinationDeg < 0 || c.Orbit.InclinationDeg > 180 {
		return fmt.Errorf("%w: orbit.inclination_deg must be within [0, 180], got %g", core.ErrConfiguration, c.Orbit.InclinationDeg)
	}
	if c.Transmitter.FeedLossDB < 0 {
		return fmt.Errorf("%w: transmitter.feed_loss_db must be >= 0, got %g", core.ErrConfiguration, c.Transmitter.FeedLossDB)
	}
	if c.Transmitter.PointingErrorDeg < 0 {
		return fmt.Errorf("%w: transmitter.pointing_error_deg must be >= 0, got %g", core.ErrConfiguration, c.Transmitter.PointingErrorDeg)
	}
	if c.Receiver.SystemNoiseTempK <= 0 {
		return fmt.Errorf("%w: receiver.system_noise_temp_k must be positive, got %g", core.ErrConfiguration, c.Receiver.SystemNoiseTempK)
	}
	if c.Receiver.LNANoiseFigureDB < 0 {
		return fmt.Errorf("%w: receiver.lna_noise_figure_db must be >= 0, got %g", core.ErrConfiguration, c.Receiver.LNANoiseFigureDB)
	}
	if c.Receiver.FeedLossDB < 0 {
		return fmt.Errorf("%w: receiver.feed_loss_db must be >= 0, got %g", core.ErrConfiguration, c.Receiver.FeedLossDB)
	}
	if c.Receiver.PointingErrorDeg < 0 {
		return fmt.Errorf("%w: receiver.pointing_error_deg must be >= 0, got %g", core.ErrConfiguration, c.Receiver.PointingErrorDeg)
	}
	if c.Modem.ImplementationLossDB < 0 {
		return fmt.Errorf("%w: modem.implementation_loss_db must be >= 0, got %g", core.ErrConfiguration, c.Modem.ImplementationLossDB)
	}
	if c.Modem.DataRateBps <= 0 {
		return fmt.Errorf("%w: modem.data_rate_bps must be positive, got %g", core.ErrConfiguration, c.Modem.DataRateBps)
	}
	if c.Atmosphere.RainRate001MmH < 0 {
		return fmt.Errorf("%w: atmosphere.rain_rate_001_mm_h must be >= 0, got %g", core.ErrConfiguration, c.Atmosphere.RainRate001MmH)
	}
	if c.Atmosphere.LatitudeDeg < -90 || c.Atmosphere.LatitudeDeg > 90 {
		return fmt.Errorf("%w: atmosphere.latitude_deg must be within [-90, 90], got %g", core.ErrConfiguration, c.Atmosphere.LatitudeDeg)
	}
	if c.Atmosphere.LiquidWaterContentKgM2 < 0 {
		return fmt.Errorf("%w: atmosphere.liquid_water_content_kg_m2 must be >= 0, got %g", core.ErrConfiguration, c.Atmosphere.LiquidWaterContentKgM2)
	}
	if c.Simulation.DurationOrbits <= 0 {
		return fmt.Errorf("%w: simulation.duration_orbits must be positive, got %g", core.ErrConfiguration, c.Simulation.DurationOrbits)
	}
	if c.Simulation.DtS <= 0 {
		return fmt.Errorf("%w: simulation.dt_s must be positive, got %g", core.ErrConfiguration, c.Simulation.DtS)
	}
	if c.Simulation.ContactDtS <= 0 {
		return fmt.Errorf("%w: simulation.contact_dt_s must be positive, got %g", core.ErrConfiguration, c.Simulation.ContactDtS)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: simulation.workers must be >= 0, got %d", core.ErrConfiguration, c.Simulation.Workers)
	}
	return nil
}
