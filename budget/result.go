package budget

import (
	"fmt"
	"strings"
)

// Result is a complete line-item link budget for one geometry sample.
// Loss fields hold positive magnitudes; Text prints them negated.
type Result struct {
	TxPowerDBW       float64
	TxAntennaGainDBi float64
	TxFeedLossDB     float64
	TxPointingLossDB float64
	TxOtherLossDB    float64
	EIRPDBW          float64

	FrequencyHz         float64
	DistanceM           float64
	FreeSpacePathLossDB float64
	AtmosphericLossDB   float64
	PolarizationLossDB  float64
	MiscLossDB          float64

	RxAntennaGainDBi float64
	RxFeedLossDB     float64
	RxPointingLossDB float64
	RxOtherLossDB    float64
	SystemNoiseTempK float64
	GOverTDBK        float64

	DataRateBps    float64
	RequiredEbN0DB float64

	COverN0DBHz float64
	EbN0DB      float64
	MarginDB    float64
}

// LinkCloses reports whether the margin is non-negative.
func (r Result) LinkCloses() bool {
	return r.MarginDB >= 0
}

// Text renders the budget as a fixed-width table.
func (r Result) Text() string {
	rule := strings.Repeat("=", 60)
	closes := "NO"
	if r.LinkCloses() {
		closes = "YES"
	}
	lines := []string{
		rule,
		"LINK BUDGET ANALYSIS",
		rule,
		"",
		"TRANSMITTER",
		fmt.Sprintf("  TX Power:            %+8.2f dBW", r.TxPowerDBW),
		fmt.Sprintf("  TX Antenna Gain:     %+8.2f dBi", r.TxAntennaGainDBi),
		fmt.Sprintf("  TX Feed Loss:        %+8.2f dB", -r.TxFeedLossDB),
		fmt.Sprintf("  TX Pointing Loss:    %+8.2f dB", -r.TxPointingLossDB),
		fmt.Sprintf("  EIRP:                %+8.2f dBW", r.EIRPDBW),
		"",
		"PATH",
		fmt.Sprintf("  Frequency:           %8.3f GHz", r.FrequencyHz/1e9),
		fmt.Sprintf("  Distance:            %8.1f km", r.DistanceM/1e3),
		fmt.Sprintf("  FSPL:                %+8.2f dB", -r.FreeSpacePathLossDB),
		fmt.Sprintf("  Atmospheric Loss:    %+8.2f dB", -r.AtmosphericLossDB),
		fmt.Sprintf("  Polarization Loss:   %+8.2f dB", -r.PolarizationLossDB),
		"",
		"RECEIVER",
		fmt.Sprintf("  RX Antenna Gain:     %+8.2f dBi", r.RxAntennaGainDBi),
		fmt.Sprintf("  RX Feed Loss:        %+8.2f dB", -r.RxFeedLossDB),
		fmt.Sprintf("  RX Pointing Loss:    %+8.2f dB", -r.RxPointingLossDB),
		fmt.Sprintf("  System Noise Temp:   %8.1f K", r.SystemNoiseTempK),
		fmt.Sprintf("  G/T:                 %+8.2f dB/K", r.GOverTDBK),
		"",
		"LINK PERFORMANCE",
		fmt.Sprintf("  C/N0:                %+8.2f dB-Hz", r.COverN0DBHz),
		fmt.Sprintf("  Data Rate:           %8.0f bps", r.DataRateBps),
		fmt.Sprintf("  Eb/N0 (received):    %+8.2f dB", r.EbN0DB),
		fmt.Sprintf("  Eb/N0 (required):    %+8.2f dB", r.RequiredEbN0DB),
		fmt.Sprintf("  MARGIN:              %+8.2f dB", r.MarginDB),
		"  Link Closes:         " + closes,
		rule,
	}
	return strings.Join(lines, "\n")
}
