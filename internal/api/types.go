// internal/api/types.go
package api

import (
	"time"

	"github.com/signalsfoundry/satlink-simulator/budget"
	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/internal/runs"
	"github.com/signalsfoundry/satlink-simulator/model"
	"github.com/signalsfoundry/satlink-simulator/report"
)

//
// Wire types for the JSON API.
//
// These keep the HTTP surface decoupled from the domain structs: domain
// types carry no JSON tags, and the wire shapes stay stable even when the
// internals move. Conversion helpers live next to the types they produce.
//

// SimulateResponse is returned by POST /v1/simulate.
type SimulateResponse struct {
	RunID     string         `json:"run_id"`
	Mission   string         `json:"mission,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ElapsedMS float64        `json:"elapsed_ms"`
	Summary   report.Summary `json:"summary"`
}

// RunMeta is the list-view projection of a stored run.
type RunMeta struct {
	RunID              string    `json:"run_id"`
	Mission            string    `json:"mission,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	ElapsedMS          float64   `json:"elapsed_ms"`
	PassCount          int       `json:"pass_count"`
	TotalDataMegabytes float64   `json:"total_data_megabytes"`
}

// RunsResponse is returned by GET /v1/runs, newest first.
type RunsResponse struct {
	Runs []RunMeta `json:"runs"`
}

// RunResponse is returned by GET /v1/runs/{id}.
type RunResponse struct {
	RunMeta
	Summary report.Summary `json:"summary"`
}

func runMetaFromStore(run runs.Run) RunMeta {
	return RunMeta{
		RunID:              run.ID,
		Mission:            run.Mission,
		CreatedAt:          run.CreatedAt,
		ElapsedMS:          float64(run.Elapsed) / float64(time.Millisecond),
		PassCount:          run.Summary.PassCount,
		TotalDataMegabytes: run.Summary.TotalDataMegabytes,
	}
}

// LinkBudgetRequest is the body of POST /v1/linkbudget. Exactly one of
// AtmosphericLossDB or ElevationDeg-with-Atmosphere supplies the
// atmospheric term; both default to zero loss. The required Eb/N0 comes
// either directly or from a modem block.
type LinkBudgetRequest struct {
	FrequencyHz float64 `json:"frequency_hz"`
	DistanceM   float64 `json:"distance_m"`

	AtmosphericLossDB float64                 `json:"atmospheric_loss_db,omitempty"`
	ElevationDeg      float64                 `json:"elevation_deg,omitempty"`
	Atmosphere        *AtmosphereRequest      `json:"atmosphere,omitempty"`
	Transmitter       TransmitterChainRequest `json:"transmitter"`
	Receiver          ReceiverChainRequest    `json:"receiver"`

	PolarizationLossDB float64 `json:"polarization_loss_db,omitempty"`
	MiscLossDB         float64 `json:"misc_loss_db,omitempty"`

	DataRateBps    float64       `json:"data_rate_bps"`
	RequiredEbN0DB *float64      `json:"required_ebn0_db,omitempty"`
	Modem          *ModemRequest `json:"modem,omitempty"`
}

// TransmitterChainRequest mirrors the transmit-side budget inputs.
type TransmitterChainRequest struct {
	PowerDBm       float64 `json:"power_dbm"`
	AntennaGainDBi float64 `json:"antenna_gain_dbi"`
	FeedLossDB     float64 `json:"feed_loss_db,omitempty"`
	PointingLossDB float64 `json:"pointing_loss_db,omitempty"`
	OtherLossDB    float64 `json:"other_loss_db,omitempty"`
}

// ReceiverChainRequest mirrors the receive-side budget inputs.
type ReceiverChainRequest struct {
	AntennaGainDBi   float64 `json:"antenna_gain_dbi"`
	SystemNoiseTempK float64 `json:"system_noise_temp_k"`
	FeedLossDB       float64 `json:"feed_loss_db,omitempty"`
	PointingLossDB   float64 `json:"pointing_loss_db,omitempty"`
	OtherLossDB      float64 `json:"other_loss_db,omitempty"`
}

// AtmosphereRequest selects the loss-model conditions for requests that
// derive atmospheric attenuation from an elevation.
type AtmosphereRequest struct {
	RainRate001MmH         float64 `json:"rain_rate_001_mm_h,omitempty"`
	LatitudeDeg            float64 `json:"latitude_deg,omitempty"`
	LiquidWaterContentKgM2 float64 `json:"liquid_water_content_kg_m2,omitempty"`
	IncludeScintillation   bool    `json:"include_scintillation,omitempty"`
}

// ModemRequest names a modulation and coding scheme.
type ModemRequest struct {
	Modulation           string  `json:"modulation"`
	Coding               string  `json:"coding,omitempty"`
	ImplementationLossDB float64 `json:"implementation_loss_db,omitempty"`
}

// LinkBudgetResponse is the full line-item budget for one geometry point.
type LinkBudgetResponse struct {
	TxPowerDBW       float64 `json:"tx_power_dbw"`
	TxAntennaGainDBi float64 `json:"tx_antenna_gain_dbi"`
	TxFeedLossDB     float64 `json:"tx_feed_loss_db"`
	TxPointingLossDB float64 `json:"tx_pointing_loss_db"`
	TxOtherLossDB    float64 `json:"tx_other_loss_db"`
	EIRPDBW          float64 `json:"eirp_dbw"`

	FrequencyHz         float64 `json:"frequency_hz"`
	DistanceM           float64 `json:"distance_m"`
	FreeSpacePathLossDB float64 `json:"free_space_path_loss_db"`
	AtmosphericLossDB   float64 `json:"atmospheric_loss_db"`
	PolarizationLossDB  float64 `json:"polarization_loss_db"`
	MiscLossDB          float64 `json:"misc_loss_db"`

	RxAntennaGainDBi float64 `json:"rx_antenna_gain_dbi"`
	RxFeedLossDB     float64 `json:"rx_feed_loss_db"`
	RxPointingLossDB float64 `json:"rx_pointing_loss_db"`
	SystemNoiseTempK float64 `json:"system_noise_temp_k"`
	GOverTDBK        float64 `json:"g_over_t_db_k"`

	DataRateBps    float64 `json:"data_rate_bps"`
	RequiredEbN0DB float64 `json:"required_ebn0_db"`

	COverN0DBHz float64 `json:"c_over_n0_db_hz"`
	EbN0DB      float64 `json:"ebn0_db"`
	MarginDB    float64 `json:"margin_db"`
	LinkCloses  bool    `json:"link_closes"`
}

func linkBudgetResponseFromResult(res budget.Result) LinkBudgetResponse {
	return LinkBudgetResponse{
		TxPowerDBW:          res.TxPowerDBW,
		TxAntennaGainDBi:    res.TxAntennaGainDBi,
		TxFeedLossDB:        res.TxFeedLossDB,
		TxPointingLossDB:    res.TxPointingLossDB,
		TxOtherLossDB:       res.TxOtherLossDB,
		EIRPDBW:             res.EIRPDBW,
		FrequencyHz:         res.FrequencyHz,
		DistanceM:           res.DistanceM,
		FreeSpacePathLossDB: res.FreeSpacePathLossDB,
		AtmosphericLossDB:   res.AtmosphericLossDB,
		PolarizationLossDB:  res.PolarizationLossDB,
		MiscLossDB:          res.MiscLossDB,
		RxAntennaGainDBi:    res.RxAntennaGainDBi,
		RxFeedLossDB:        res.RxFeedLossDB,
		RxPointingLossDB:    res.RxPointingLossDB,
		SystemNoiseTempK:    res.SystemNoiseTempK,
		GOverTDBK:           res.GOverTDBK,
		DataRateBps:         res.DataRateBps,
		RequiredEbN0DB:      res.RequiredEbN0DB,
		COverN0DBHz:         res.COverN0DBHz,
		EbN0DB:              res.EbN0DB,
		MarginDB:            res.MarginDB,
		LinkCloses:          res.LinkCloses(),
	}
}

// PassesRequest is the body of POST /v1/passes: a geometry-only pass
// prediction. The station comes either from the catalog by name or inline.
type PassesRequest struct {
	Orbit          OrbitRequest    `json:"orbit"`
	GroundStation  string          `json:"ground_station,omitempty"`
	Station        *StationRequest `json:"station,omitempty"`
	DurationOrbits float64         `json:"duration_orbits,omitempty"`
	DurationS      float64         `json:"duration_s,omitempty"`
	DtS            float64         `json:"dt_s,omitempty"`
}

// OrbitRequest carries circular orbital elements.
type OrbitRequest struct {
	AltitudeKm     float64 `json:"altitude_km"`
	InclinationDeg float64 `json:"inclination_deg"`
	RAANDeg        float64 `json:"raan_deg,omitempty"`
	J2             *bool   `json:"j2,omitempty"`
}

// StationRequest carries an inline observer site.
type StationRequest struct {
	Name            string  `json:"name,omitempty"`
	LatitudeDeg     float64 `json:"latitude_deg"`
	LongitudeDeg    float64 `json:"longitude_deg"`
	AltitudeM       float64 `json:"altitude_m,omitempty"`
	MinElevationDeg float64 `json:"min_elevation_deg,omitempty"`
}

// PassWindow is one predicted contact interval.
type PassWindow struct {
	RiseTimeS         float64 `json:"rise_time_s"`
	SetTimeS          float64 `json:"set_time_s"`
	DurationS         float64 `json:"duration_s"`
	MaxElevationDeg   float64 `json:"max_elevation_deg"`
	MaxElevationTimeS float64 `json:"max_elevation_time_s"`
}

// PassesResponse is returned by POST /v1/passes.
type PassesResponse struct {
	Station     string       `json:"station"`
	DurationS   float64      `json:"duration_s"`
	OrbitPeriod float64      `json:"orbit_period_s"`
	Passes      []PassWindow `json:"passes"`
}

func passWindowsFromCore(windows []core.ContactWindow) []PassWindow {
	out := make([]PassWindow, 0, len(windows))
	for _, w := range windows {
		out = append(out, PassWindow{
			RiseTimeS:         w.RiseTimeS,
			SetTimeS:          w.SetTimeS,
			DurationS:         w.DurationS(),
			MaxElevationDeg:   w.MaxElevationDeg,
			MaxElevationTimeS: w.MaxElevationTimeS,
		})
	}
	return out
}

// CatalogListResponse is the shared shape of the catalog listing endpoints.
type CatalogListResponse struct {
	Names []string `json:"names"`
}

// TransceiverResponse mirrors a transceiver datasheet.
type TransceiverResponse struct {
	Name              string  `json:"name"`
	Manufacturer      string  `json:"manufacturer,omitempty"`
	FrequencyHz       float64 `json:"frequency_hz"`
	TxPowerDBm        float64 `json:"tx_power_dbm"`
	RxSensitivityDBm  float64 `json:"rx_sensitivity_dbm"`
	DataRateBps       float64 `json:"data_rate_bps"`
	Modulation        string  `json:"modulation"`
	MassKg            float64 `json:"mass_kg,omitempty"`
	PowerConsumptionW float64 `json:"power_consumption_w,omitempty"`
}

func transceiverResponseFromModel(t model.Transceiver) TransceiverResponse {
	return TransceiverResponse{
		Name:              t.Name,
		Manufacturer:      t.Manufacturer,
		FrequencyHz:       t.FrequencyHz,
		TxPowerDBm:        t.TxPowerDBm,
		RxSensitivityDBm:  t.RxSensitivityDBm,
		DataRateBps:       t.DataRateBps,
		Modulation:        t.Modulation,
		MassKg:            t.MassKg,
		PowerConsumptionW: t.PowerConsumptionW,
	}
}

// AntennaResponse mirrors an antenna datasheet.
type AntennaResponse struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	GainDBi      float64 `json:"gain_dbi"`
	FrequencyHz  float64 `json:"frequency_hz,omitempty"`
	BeamwidthDeg float64 `json:"beamwidth_deg,omitempty"`
	DiameterM    float64 `json:"diameter_m,omitempty"`
	Efficiency   float64 `json:"efficiency,omitempty"`
	NumElements  int     `json:"num_elements,omitempty"`
	Polarization string  `json:"polarization,omitempty"`
	MassKg       float64 `json:"mass_kg,omitempty"`
}

func antennaResponseFromModel(a model.Antenna) AntennaResponse {
	return AntennaResponse{
		Name:         a.Name,
		Type:         a.Type,
		GainDBi:      a.GainDBi,
		FrequencyHz:  a.FrequencyHz,
		BeamwidthDeg: a.BeamwidthDeg,
		DiameterM:    a.DiameterM,
		Efficiency:   a.Efficiency,
		NumElements:  a.NumElements,
		Polarization: a.Polarization,
		MassKg:       a.MassKg,
	}
}

// GroundStationResponse mirrors a ground station datasheet.
type GroundStationResponse struct {
	Name             string   `json:"name"`
	Operator         string   `json:"operator,omitempty"`
	LatitudeDeg      float64  `json:"latitude_deg"`
	LongitudeDeg     float64  `json:"longitude_deg"`
	AltitudeM        float64  `json:"altitude_m"`
	MinElevationDeg  float64  `json:"min_elevation_deg"`
	AntennaDiameterM float64  `json:"antenna_diameter_m,omitempty"`
	AntennaGainDBi   float64  `json:"antenna_gain_dbi"`
	AntennaType      string   `json:"antenna_type,omitempty"`
	SystemNoiseTempK float64  `json:"system_noise_temp_k"`
	LNANoiseFigureDB float64  `json:"lna_noise_figure_db,omitempty"`
	FrequencyBands   []string `json:"frequency_bands,omitempty"`
	Polarization     string   `json:"polarization,omitempty"`
}

func groundStationResponseFromModel(gs model.GroundStationEntry) GroundStationResponse {
	return GroundStationResponse{
		Name:             gs.Name,
		Operator:         gs.Operator,
		LatitudeDeg:      gs.LatitudeDeg,
		LongitudeDeg:     gs.LongitudeDeg,
		AltitudeM:        gs.AltitudeM,
		MinElevationDeg:  gs.MinElevationDeg,
		AntennaDiameterM: gs.AntennaDiameterM,
		AntennaGainDBi:   gs.AntennaGainDBi,
		AntennaType:      gs.AntennaType,
		SystemNoiseTempK: gs.SystemNoiseTempK,
		LNANoiseFigureDB: gs.LNANoiseFigureDB,
		FrequencyBands:   gs.FrequencyBands,
		Polarization:     gs.Polarization,
	}
}

// BandResponse mirrors a frequency band allocation.
type BandResponse struct {
	Name           string  `json:"name"`
	Designation    string  `json:"designation,omitempty"`
	UplinkMinHz    float64 `json:"uplink_min_hz,omitempty"`
	UplinkMaxHz    float64 `json:"uplink_max_hz,omitempty"`
	DownlinkMinHz  float64 `json:"downlink_min_hz,omitempty"`
	DownlinkMaxHz  float64 `json:"downlink_max_hz,omitempty"`
	TypicalEIRPDBW float64 `json:"typical_eirp_dbw,omitempty"`
	MaxBandwidthHz float64 `json:"max_bandwidth_hz,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

func bandResponseFromModel(b model.FrequencyBand) BandResponse {
	return BandResponse{
		Name:           b.Name,
		Designation:    b.Designation,
		UplinkMinHz:    b.UplinkMinHz,
		UplinkMaxHz:    b.UplinkMaxHz,
		DownlinkMinHz:  b.DownlinkMinHz,
		DownlinkMaxHz:  b.DownlinkMaxHz,
		TypicalEIRPDBW: b.TypicalEIRPDBW,
		MaxBandwidthHz: b.MaxBandwidthHz,
		Notes:          b.Notes,
	}
}
