// mission/builder.go
package mission

import (
	"context"
	"fmt"

	"github.com/signalsfoundry/satlink-simulator/antenna"
	"github.com/signalsfoundry/satlink-simulator/atmosphere"
	"github.com/signalsfoundry/satlink-simulator/budget"
	"github.com/signalsfoundry/satlink-simulator/catalog"
	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/modem"
)

// defaultTxBeamwidthDeg stands in when no antenna datasheet is named: wide
// enough that small pointing errors cost little.
const defaultTxBeamwidthDeg = 90.0

// defaultMinElevationDeg is the visibility mask for an unnamed site.
const defaultMinElevationDeg = 5.0

// Mission is a fully wired simulation run: the engine plus the resolved
// pieces the reports and the API echo back.
type Mission struct {
	Name      string
	Config    Config
	Station   core.GroundStation
	Evaluator *budget.Evaluator
	Modem     modem.Config
	Engine    *core.PassSimulationEngine
}

// Build resolves the config's catalog references and assembles the engine.
// reg may be nil when the config is fully inline; naming a catalog
// component without a registry is a configuration error.
func Build(cfg Config, reg *catalog.Registry) (*Mission, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	earth := core.WGS84()
	if !cfg.Orbit.J2 {
		earth.J2 = 0
	}
	prop, err := core.NewKeplerJ2Propagator(earth, core.OrbitalElements{
		AltitudeM:      cfg.Orbit.AltitudeKm * 1e3,
		InclinationDeg: cfg.Orbit.InclinationDeg,
		RAANDeg:        cfg.Orbit.RAANDeg,
	})
	if err != nil {
		return nil, err
	}

	gs, rx, err := resolveReceiver(cfg, reg)
	if err != nil {
		return nil, err
	}
	frame, err := core.NewGroundStationFrame(earth, gs)
	if err != nil {
		return nil, err
	}

	tx, err := resolveTransmitter(cfg, reg)
	if err != nil {
		return nil, err
	}

	mod, err := modem.ModulationByName(cfg.Modem.Modulation)
	if err != nil {
		return nil, err
	}
	cod, err := modem.CodingByName(cfg.Modem.Coding)
	if err != nil {
		return nil, err
	}
	mc := modem.Config{
		Modulation:           mod,
		Coding:               cod,
		ImplementationLossDB: cfg.Modem.ImplementationLossDB,
	}

	cond := atmosphere.DefaultConditions()
	cond.RainRateMMH = cfg.Atmosphere.RainRate001MmH
	cond.LatitudeDeg = cfg.Atmosphere.LatitudeDeg
	cond.WaterKgM2 = cfg.Atmosphere.LiquidWaterContentKgM2
	cond.IncludeScintillation = cfg.Atmosphere.IncludeScintillation
	atm, err := atmosphere.NewModel(cond)
	if err != nil {
		return nil, err
	}

	eval := &budget.Evaluator{
		Tx:             tx,
		Rx:             rx,
		DataRateBps:    cfg.Modem.DataRateBps,
		RequiredEbN0DB: mc.RequiredEbN0DB(modem.DefaultTargetBER),
	}

	engine, err := core.NewPassSimulationEngine(prop, frame, atm, eval, core.EngineConfig{
		FrequencyHz: cfg.FrequencyHz,
		DataRateBps: cfg.Modem.DataRateBps,
		Workers:     cfg.Simulation.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &Mission{
		Name:      cfg.Name,
		Config:    cfg,
		Station:   gs,
		Evaluator: eval,
		Modem:     mc,
		Engine:    engine,
	}, nil
}

// Run executes the configured span: duration_orbits periods, scanned at
// contact_dt_s and resampled at dt_s.
func (m *Mission) Run(ctx context.Context) (*core.PassSimulationResult, error) {
	sim := m.Config.Simulation
	return m.Engine.Run(ctx, core.Orbits(sim.DurationOrbits), sim.DtS, sim.ContactDtS)
}

// resolveReceiver picks the site and the receive chain. A named ground
// station supplies location and mask, and its antenna gain and noise
// temperature take precedence when the datasheet carries them; otherwise
// the site is a custom one at the atmosphere latitude using the inline
// receiver values.
func resolveReceiver(cfg Config, reg *catalog.Registry) (core.GroundStation, budget.ReceiverChain, error) {
	rx := budget.ReceiverChain{
		AntennaGainDBi:   cfg.Receiver.AntennaGainDBi,
		SystemNoiseTempK: cfg.Receiver.SystemNoiseTempK,
		FeedLossDB:       cfg.Receiver.FeedLossDB,
	}

	if cfg.Receiver.GroundStation == "" {
		gs, err := core.NewGroundStation("Custom", cfg.Atmosphere.LatitudeDeg, 0, 0, defaultMinElevationDeg)
		return gs, rx, err
	}

	if reg == nil {
		return core.GroundStation{}, rx, fmt.Errorf("%w: receiver.ground_station %q given but no catalog available", core.ErrConfiguration, cfg.Receiver.GroundStation)
	}
	entry, err := reg.GroundStation(cfg.Receiver.GroundStation)
	if err != nil {
		return core.GroundStation{}, rx, err
	}
	gs, err := core.NewGroundStation(entry.Name, entry.LatitudeDeg, entry.LongitudeDeg, entry.AltitudeM, entry.MinElevationDeg)
	if err != nil {
		return core.GroundStation{}, rx, err
	}

	if entry.AntennaGainDBi != 0 {
		rx.AntennaGainDBi = entry.AntennaGainDBi
	}
	if entry.SystemNoiseTempK != 0 {
		rx.SystemNoiseTempK = entry.SystemNoiseTempK
	}
	// A receive pointing error only converts to a loss when the dish
	// diameter pins down a beamwidth.
	if cfg.Receiver.PointingErrorDeg > 0 && entry.AntennaDiameterM > 0 {
		bw := antenna.Parabolic{DiameterM: entry.AntennaDiameterM}.BeamwidthDeg(cfg.FrequencyHz)
		rx.PointingLossDB = antenna.PointingLossDB(cfg.Receiver.PointingErrorDeg, bw)
	}
	return gs, rx, nil
}

// resolveTransmitter assembles the transmit chain, preferring datasheet
// power and antenna parameters over the inline ones.
func resolveTransmitter(cfg Config, reg *catalog.Registry) (budget.TransmitterChain, error) {
	powerDBm := cfg.Transmitter.PowerDBm
	if cfg.Transmitter.Transceiver != "" {
		if reg == nil {
			return budget.TransmitterChain{}, fmt.Errorf("%w: transmitter.transceiver %q given but no catalog available", core.ErrConfiguration, cfg.Transmitter.Transceiver)
		}
		trx, err := reg.Transceiver(cfg.Transmitter.Transceiver)
		if err != nil {
			return budget.TransmitterChain{}, err
		}
		powerDBm = trx.TxPowerDBm
	}

	gain := cfg.Transmitter.AntennaGainDBi
	beamwidth := defaultTxBeamwidthDeg
	if cfg.Transmitter.Antenna != "" {
		if reg == nil {
			return budget.TransmitterChain{}, fmt.Errorf("%w: transmitter.antenna %q given but no catalog available", core.ErrConfiguration, cfg.Transmitter.Antenna)
		}
		ant, err := reg.Antenna(cfg.Transmitter.Antenna)
		if err != nil {
			return budget.TransmitterChain{}, err
		}
		gain = ant.GainDBi
		beamwidth = ant.BeamwidthDeg
	}

	pointing := 0.0
	if cfg.Transmitter.PointingErrorDeg > 0 && beamwidth > 0 {
		pointing = antenna.PointingLossDB(cfg.Transmitter.PointingErrorDeg, beamwidth)
	}

	return budget.TransmitterFromDBm(powerDBm, gain, cfg.Transmitter.FeedLossDB, pointing, 0), nil
}
