package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/signalsfoundry/satlink-simulator/model"
)

// Defaults applied when a datasheet omits the field.
const (
	defaultRxSensitivityDBm = -120.0
	defaultDataRateBps      = 9600.0
	defaultModulation       = "BPSK"

	defaultBeamwidthDeg        = 360.0
	defaultEfficiency          = 0.55
	defaultNumElements         = 1
	defaultAntennaPolarization = "linear_v"

	defaultMinElevationDeg     = 5.0
	defaultSystemNoiseTempK    = 150.0
	defaultLNANoiseFigureDB    = 1.0
	defaultStationAntennaType  = "parabolic"
	defaultStationPolarization = "rhcp"
)

// The JSON mirrors stay unexported so the file shapes can evolve without
// touching the model types. Pointer fields distinguish absent from zero,
// so defaults fill only true gaps.
type transceiverJSON struct {
	Name              string   `json:"name"`
	Manufacturer      string   `json:"manufacturer"`
	FrequencyHz       float64  `json:"frequency_hz"`
	TxPowerDBm        float64  `json:"tx_power_dbm"`
	RxSensitivityDBm  *float64 `json:"rx_sensitivity_dbm"`
	DataRateBps       *float64 `json:"data_rate_bps"`
	Modulation        string   `json:"modulation"`
	MassKg            float64  `json:"mass_kg"`
	PowerConsumptionW float64  `json:"power_consumption_w"`
}

type antennaJSON struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	GainDBi      float64  `json:"gain_dbi"`
	FrequencyHz  float64  `json:"frequency_hz"`
	BeamwidthDeg *float64 `json:"beamwidth_deg"`
	DiameterM    float64  `json:"diameter_m"`
	Efficiency   *float64 `json:"efficiency"`
	NumElements  *int     `json:"num_elements"`
	Polarization string   `json:"polarization"`
	MassKg       float64  `json:"mass_kg"`
}

type groundStationJSON struct {
	Name             string   `json:"name"`
	Operator         string   `json:"operator"`
	LatitudeDeg      float64  `json:"latitude_deg"`
	LongitudeDeg     float64  `json:"longitude_deg"`
	AltitudeM        float64  `json:"altitude_m"`
	MinElevationDeg  *float64 `json:"min_elevation_deg"`
	AntennaDiameterM float64  `json:"antenna_diameter_m"`
	AntennaGainDBi   float64  `json:"antenna_gain_dbi"`
	AntennaType      string   `json:"antenna_type"`
	SystemNoiseTempK *float64 `json:"system_noise_temp_k"`
	LNANoiseFigureDB *float64 `json:"lna_noise_figure_db"`
	FrequencyBands   []string `json:"frequency_bands"`
	Polarization     string   `json:"polarization"`
}

type frequencyBandJSON struct {
	Name           string  `json:"name"`
	Designation    string  `json:"designation"`
	UplinkMinHz    float64 `json:"uplink_min_hz"`
	UplinkMaxHz    float64 `json:"uplink_max_hz"`
	DownlinkMinHz  float64 `json:"downlink_min_hz"`
	DownlinkMaxHz  float64 `json:"downlink_max_hz"`
	TypicalEIRPDBW float64 `json:"typical_eirp_dbw"`
	MaxBandwidthHz float64 `json:"max_bandwidth_hz"`
	Notes          string  `json:"notes"`
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Transceiver resolves one transceiver datasheet by name.
func (r *Registry) Transceiver(name string) (model.Transceiver, error) {
	raw, err := r.raw(categoryTransceivers, "transceiver", name)
	if err != nil {
		return model.Transceiver{}, err
	}

	var js transceiverJSON
	if err := json.Unmarshal(raw, &js); err != nil {
		return model.Transceiver{}, fmt.Errorf("transceiver %q: decode failed: %w", name, err)
	}
	if js.FrequencyHz <= 0 {
		return model.Transceiver{}, fmt.Errorf("transceiver %q: frequency_hz must be positive", name)
	}
	return model.Transceiver{
		Name:              stringOr(js.Name, name),
		Manufacturer:      js.Manufacturer,
		FrequencyHz:       js.FrequencyHz,
		TxPowerDBm:        js.TxPowerDBm,
		RxSensitivityDBm:  floatOr(js.RxSensitivityDBm, defaultRxSensitivityDBm),
		DataRateBps:       floatOr(js.DataRateBps, defaultDataRateBps),
		Modulation:        stringOr(js.Modulation, defaultModulation),
		MassKg:            js.MassKg,
		PowerConsumptionW: js.PowerConsumptionW,
	}, nil
}

// Antenna resolves one antenna datasheet by name.
func (r *Registry) Antenna(name string) (model.Antenna, error) {
	raw, err := r.raw(categoryAntennas, "antenna", name)
	if err != nil {
		return model.Antenna{}, err
	}

	var js antennaJSON
	if err := json.Unmarshal(raw, &js); err != nil {
		return model.Antenna{}, fmt.Errorf("antenna %q: decode failed: %w", name, err)
	}
	if js.Type == "" {
		return model.Antenna{}, fmt.Errorf("antenna %q: type is required", name)
	}
	return model.Antenna{
		Name:         stringOr(js.Name, name),
		Type:         js.Type,
		GainDBi:      js.GainDBi,
		FrequencyHz:  js.FrequencyHz,
		BeamwidthDeg: floatOr(js.BeamwidthDeg, defaultBeamwidthDeg),
		DiameterM:    js.DiameterM,
		Efficiency:   floatOr(js.Efficiency, defaultEfficiency),
		NumElements:  intOr(js.NumElements, defaultNumElements),
		Polarization: stringOr(js.Polarization, defaultAntennaPolarization),
		MassKg:       js.MassKg,
	}, nil
}

// GroundStation resolves one ground station datasheet by name.
func (r *Registry) GroundStation(name string) (model.GroundStationEntry, error) {
	raw, err := r.raw(categoryGroundStations, "ground station", name)
	if err != nil {
		return model.GroundStationEntry{}, err
	}

	var js groundStationJSON
	if err := json.Unmarshal(raw, &js); err != nil {
		return model.GroundStationEntry{}, fmt.Errorf("ground station %q: decode failed: %w", name, err)
	}
	return model.GroundStationEntry{
		Name:             stringOr(js.Name, name),
		Operator:         js.Operator,
		LatitudeDeg:      js.LatitudeDeg,
		LongitudeDeg:     js.LongitudeDeg,
		AltitudeM:        js.AltitudeM,
		MinElevationDeg:  floatOr(js.MinElevationDeg, defaultMinElevationDeg),
		AntennaDiameterM: js.AntennaDiameterM,
		AntennaGainDBi:   js.AntennaGainDBi,
		AntennaType:      stringOr(js.AntennaType, defaultStationAntennaType),
		SystemNoiseTempK: floatOr(js.SystemNoiseTempK, defaultSystemNoiseTempK),
		LNANoiseFigureDB: floatOr(js.LNANoiseFigureDB, defaultLNANoiseFigureDB),
		FrequencyBands:   js.FrequencyBands,
		Polarization:     stringOr(js.Polarization, defaultStationPolarization),
	}, nil
}

// Band resolves one frequency band datasheet by name.
func (r *Registry) Band(name string) (model.FrequencyBand, error) {
	raw, err := r.raw(categoryBands, "frequency band", name)
	if err != nil {
		return model.FrequencyBand{}, err
	}

	var js frequencyBandJSON
	if err := json.Unmarshal(raw, &js); err != nil {
		return model.FrequencyBand{}, fmt.Errorf("frequency band %q: decode failed: %w", name, err)
	}
	if js.Designation == "" {
		return model.FrequencyBand{}, fmt.Errorf("frequency band %q: designation is required", name)
	}
	return model.FrequencyBand{
		Name:           stringOr(js.Name, name),
		Designation:    js.Designation,
		UplinkMinHz:    js.UplinkMinHz,
		UplinkMaxHz:    js.UplinkMaxHz,
		DownlinkMinHz:  js.DownlinkMinHz,
		DownlinkMaxHz:  js.DownlinkMaxHz,
		TypicalEIRPDBW: js.TypicalEIRPDBW,
		MaxBandwidthHz: js.MaxBandwidthHz,
		Notes:          js.Notes,
	}, nil
}
