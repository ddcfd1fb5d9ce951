// Package budget computes RF link budgets between a spacecraft
// transmitter and a ground receiver.
//
// The arithmetic is the standard dB bookkeeping: transmitter EIRP,
// receiver figure of merit, free-space and atmospheric losses, then
// C/N0, Eb/N0 and margin against the modem requirement. Evaluator
// bundles the static ends of the link so the per-sample call during a
// pass only needs frequency, range and atmospheric loss.
package budget

import "github.com/signalsfoundry/satlink-simulator/rf"

// TransmitterChain describes the transmitting end of the link.
// All fields are in dB terms and losses are entered as positive numbers.
type TransmitterChain struct {
	PowerDBW       float64
	AntennaGainDBi float64
	FeedLossDB     float64
	PointingLossDB float64
	OtherLossDB    float64
}

// TransmitterFromDBm builds a TransmitterChain from a transmit power in
// dBm, the usual unit on transceiver datasheets.
func TransmitterFromDBm(powerDBm, antennaGainDBi, feedLossDB, pointingLossDB, otherLossDB float64) TransmitterChain {
	return TransmitterChain{
		PowerDBW:       rf.DBmToDBW(powerDBm),
		AntennaGainDBi: antennaGainDBi,
		FeedLossDB:     feedLossDB,
		PointingLossDB: pointingLossDB,
		OtherLossDB:    otherLossDB,
	}
}

// EIRPDBW is the effective isotropic radiated power after feed,
// pointing and other losses.
func (t TransmitterChain) EIRPDBW() float64 {
	return t.PowerDBW + t.AntennaGainDBi - t.FeedLossDB - t.PointingLossDB - t.OtherLossDB
}

// ReceiverChain describes the receiving end of the link.
type ReceiverChain struct {
	AntennaGainDBi   float64
	SystemNoiseTempK float64
	FeedLossDB       float64
	PointingLossDB   float64
	OtherLossDB      float64
}

// FigureOfMeritDBK is the receiver G/T in dB/K, with chain losses
// charged against the antenna gain.
func (r ReceiverChain) FigureOfMeritDBK() float64 {
	effective := r.AntennaGainDBi - r.FeedLossDB - r.PointingLossDB - r.OtherLossDB
	return rf.FigureOfMeritDBK(effective, r.SystemNoiseTempK)
}
