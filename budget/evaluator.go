package budget

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/satlink-simulator/core"
	"github.com/signalsfoundry/satlink-simulator/rf"
)

// DefaultTargetMarginDB is the margin held in reserve when sizing data
// rate or transmit power.
const DefaultTargetMarginDB = 3.0

// Evaluator holds the static ends of a link and prices the path between
// them. The per-sample inputs are frequency, slant range and the
// atmospheric loss already computed for the sample's elevation.
// Evaluator satisfies core.LinkBudget.
type Evaluator struct {
	Tx                 TransmitterChain
	Rx                 ReceiverChain
	DataRateBps        float64
	RequiredEbN0DB     float64
	PolarizationLossDB float64
	MiscLossDB         float64
}

func (e Evaluator) validateGeometry(freqHz, distanceM float64) error {
	if freqHz <= 0 || math.IsNaN(freqHz) {
		return fmt.Errorf("%w: frequency must be positive, got %g Hz", core.ErrConfiguration, freqHz)
	}
	if distanceM <= 0 || math.IsNaN(distanceM) {
		return fmt.Errorf("%w: distance must be positive, got %g m", core.ErrConfiguration, distanceM)
	}
	return nil
}

func (e Evaluator) validateRate() error {
	if e.DataRateBps <= 0 {
		return fmt.Errorf("%w: data rate must be positive, got %g bps", core.ErrConfiguration, e.DataRateBps)
	}
	return nil
}

// coverN0 is the carrier-to-noise-density ratio in dB-Hz for the given
// path. rf.BoltzmannDBW is negative, so subtracting it adds 228.6 dB.
func (e Evaluator) coverN0(freqHz, distanceM, atmosphericLossDB float64) float64 {
	return e.Tx.EIRPDBW() + e.Rx.FigureOfMeritDBK() -
		rf.FreeSpacePathLossDB(distanceM, freqHz) -
		atmosphericLossDB - e.PolarizationLossDB - e.MiscLossDB -
		rf.BoltzmannDBW
}

// Detail computes the full line-item budget for one geometry sample.
func (e Evaluator) Detail(freqHz, distanceM, atmosphericLossDB float64) (Result, error) {
	if err := e.validateGeometry(freqHz, distanceM); err != nil {
		return Result{}, err
	}
	if err := e.validateRate(); err != nil {
		return Result{}, err
	}

	cn0 := e.coverN0(freqHz, distanceM, atmosphericLossDB)
	ebN0 := cn0 - 10*math.Log10(e.DataRateBps)
	margin := ebN0 - e.RequiredEbN0DB

	return Result{
		TxPowerDBW:       e.Tx.PowerDBW,
		TxAntennaGainDBi: e.Tx.AntennaGainDBi,
		TxFeedLossDB:     e.Tx.FeedLossDB,
		TxPointingLossDB: e.Tx.PointingLossDB,
		TxOtherLossDB:    e.Tx.OtherLossDB,
		EIRPDBW:          e.Tx.EIRPDBW(),

		FrequencyHz:         freqHz,
		DistanceM:           distanceM,
		FreeSpacePathLossDB: rf.FreeSpacePathLossDB(distanceM, freqHz),
		AtmosphericLossDB:   atmosphericLossDB,
		PolarizationLossDB:  e.PolarizationLossDB,
		MiscLossDB:          e.MiscLossDB,

		RxAntennaGainDBi: e.Rx.AntennaGainDBi,
		RxFeedLossDB:     e.Rx.FeedLossDB,
		RxPointingLossDB: e.Rx.PointingLossDB,
		RxOtherLossDB:    e.Rx.OtherLossDB,
		SystemNoiseTempK: e.Rx.SystemNoiseTempK,
		GOverTDBK:        e.Rx.FigureOfMeritDBK(),

		DataRateBps:    e.DataRateBps,
		RequiredEbN0DB: e.RequiredEbN0DB,

		COverN0DBHz: cn0,
		EbN0DB:      ebN0,
		MarginDB:    margin,
	}, nil
}

// Compute returns the summary fields the engine samples during a pass.
func (e Evaluator) Compute(freqHz, distanceM, atmosphericLossDB float64) (core.LinkBudgetResult, error) {
	d, err := e.Detail(freqHz, distanceM, atmosphericLossDB)
	if err != nil {
		return core.LinkBudgetResult{}, err
	}
	return core.LinkBudgetResult{
		EIRPDBW:        d.EIRPDBW,
		GOverTDBK:      d.GOverTDBK,
		PathLossDB:     d.FreeSpacePathLossDB,
		COverN0DBHz:    d.COverN0DBHz,
		EbN0DB:         d.EbN0DB,
		RequiredEbN0DB: d.RequiredEbN0DB,
		MarginDB:       d.MarginDB,
		LinkCloses:     d.LinkCloses(),
	}, nil
}

// MaxDataRateBps returns the highest data rate that still holds the
// target margin at the given geometry. Zero when no positive rate can.
func (e Evaluator) MaxDataRateBps(freqHz, distanceM, atmosphericLossDB, targetMarginDB float64) (float64, error) {
	if err := e.validateGeometry(freqHz, distanceM); err != nil {
		return 0, err
	}
	logRate := e.coverN0(freqHz, distanceM, atmosphericLossDB) - e.RequiredEbN0DB - targetMarginDB
	if logRate < 0 {
		return 0, nil
	}
	return math.Pow(10, logRate/10), nil
}

// RequiredPowerDBW returns the transmit power that closes the link with
// the target margin. Only the transmit antenna gain and feed loss enter
// the inversion; pointing and other losses eat into the margin.
func (e Evaluator) RequiredPowerDBW(freqHz, distanceM, atmosphericLossDB, targetMarginDB float64) (float64, error) {
	if err := e.validateGeometry(freqHz, distanceM); err != nil {
		return 0, err
	}
	if err := e.validateRate(); err != nil {
		return 0, err
	}
	requiredCN0 := e.RequiredEbN0DB + targetMarginDB + 10*math.Log10(e.DataRateBps)
	requiredEIRP := requiredCN0 - e.Rx.FigureOfMeritDBK() +
		rf.FreeSpacePathLossDB(distanceM, freqHz) +
		atmosphericLossDB + e.PolarizationLossDB + e.MiscLossDB +
		rf.BoltzmannDBW
	return requiredEIRP - e.Tx.AntennaGainDBi + e.Tx.FeedLossDB, nil
}
